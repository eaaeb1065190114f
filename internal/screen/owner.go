package screen

import "github.com/google/uuid"

// Owner identifies one screen instance. Async results carry the Owner of
// the screen that started them, so a screen can drop results meant for an
// instance that has since been navigated away from.
type Owner string

// NewOwner returns a fresh Owner.
func NewOwner() Owner { return Owner(uuid.NewString()) }
