package navigation

// Blocks reports whether a blocker of blockerPriority suppresses a space of spacePriority
// Blockers reach spaces with equal or lower blocking priority
func Blocks(blockerPriority, spacePriority int) bool {
	return blockerPriority >= spacePriority
}

// BlockerAffects applies the full rule for a blocker against a space
func BlockerAffects(b *Blocker, s *Space) bool {
	return b.Enabled() &&
		b.Layer() == s.Layer() &&
		b.SpaceType() == s.Type() &&
		Blocks(b.BlockingPriority(), s.BlockingPriority())
}

// SpaceBlockerAffects applies the rule for the blocker shape list of other against s
// A space never blocks itself
func SpaceBlockerAffects(other, s *Space) bool {
	return other != s &&
		other.BlockerShapeList().Count() > 0 &&
		other.Layer() == s.Layer() &&
		Blocks(other.BlockingPriority(), s.BlockingPriority())
}
