package habits

// PetState is the pet's mood, classified fresh on every call from today's
// completion ratio. There is no persisted state machine.
type PetState string

const (
	PetSuperHappy PetState = "super-happy"
	PetHappy      PetState = "happy"
	PetSad        PetState = "sad"
	PetSick       PetState = "sick"
)

// ClassifyPet maps today's completed count to a mood. Everything done is
// super-happy, 60% or more is happy, anything at all is sad, nothing is
// sick.
func ClassifyPet(completedToday, activeHabitCount int) PetState {
	if activeHabitCount <= 0 || completedToday <= 0 {
		return PetSick
	}
	ratio := float64(completedToday) / float64(activeHabitCount)
	switch {
	case ratio >= 1.0:
		return PetSuperHappy
	case ratio >= 0.6:
		return PetHappy
	default:
		return PetSad
	}
}
