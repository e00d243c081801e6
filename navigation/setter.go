package navigation

import "github.com/LordOfDragons/dragengine-sub060/vmath"

// setIfChanged stores value and runs notify only when it differs from *field
func setIfChanged[T any](field *T, value T, equal func(a, b T) bool, notify func()) bool {
	if equal(*field, value) {
		return false
	}
	*field = value
	if notify != nil {
		notify()
	}
	return true
}

func exact[T comparable](a, b T) bool { return a == b }

func floatEqual(a, b float32) bool { return vmath.FloatEqual(a, b) }

func dvEqual(a, b vmath.DVector) bool { return vmath.DVEqual(a, b) }

func vEqual(a, b vmath.Vector) bool { return vmath.VEqual(a, b) }

func quatEqual(a, b vmath.Quaternion) bool { return vmath.QuatEqual(a, b) }
