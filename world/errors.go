package world

import "github.com/LordOfDragons/dragengine-sub060/navigation"

// ErrInvalidParam is shared with the navigation resources so callers test one sentinel
var ErrInvalidParam = navigation.ErrInvalidParam
