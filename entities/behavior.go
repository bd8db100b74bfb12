package entities

type BehaviorMode = string

const (
	BehaviorPlayOnce BehaviorMode = "playOnce"
	BehaviorLoop     BehaviorMode = "loop"
	BehaviorRepeat   BehaviorMode = "repeat"
)

// Behavior governs what happens when an item's natural duration elapses.
type Behavior struct {
	Mode BehaviorMode

	// RepeatCount is the number of extra plays for BehaviorRepeat.
	RepeatCount int
}

func PlayOnce() Behavior {
	return Behavior{Mode: BehaviorPlayOnce}
}

func Loop() Behavior {
	return Behavior{Mode: BehaviorLoop}
}

func Repeat(count int) Behavior {
	return Behavior{Mode: BehaviorRepeat, RepeatCount: count}
}
