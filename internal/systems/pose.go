package systems

import "wander-server/internal/domain"

// Animate крутит фазу шага. Чистая косметика, на движение не влияет.
func Animate(a *domain.Agent) {
	if a.Leaving() {
		a.LegPhase += domain.LegPhaseLeaving
		return
	}
	a.LegPhase += domain.LegPhaseWander
}
