package navigation

// NavigatorType maps an element type tag to its traversal cost
// Cost of entering an element of this type: FixCost once, CostPerMeter per meter travelled
type NavigatorType struct {
	Type         int
	FixCost      float32
	CostPerMeter float32
}

func newNavigatorType(tag int) NavigatorType {
	return NavigatorType{Type: tag, FixCost: 0, CostPerMeter: 1}
}

func (t *NavigatorType) SetFixCost(cost float32)      { t.FixCost = cost }
func (t *NavigatorType) SetCostPerMeter(cost float32) { t.CostPerMeter = cost }
