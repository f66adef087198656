package puzzle

// SaveData persists per-stage clear flags. *bramble.SaveStore satisfies it.
type SaveData interface {
	Flags(key string) []int
	SetFlags(key string, flags []int) error
	Flush() error
}

// Mode is a named, ordered list of stage files. Every mode but the first
// unlocks once all stages of the previous mode are fully cleared.
type Mode struct {
	Name   string
	Stages []string
}

// Progress answers clear and unlock questions over a SaveData.
type Progress struct {
	modes []Mode
	save  SaveData
}

// NewProgress creates a Progress for modes backed by save.
func NewProgress(modes []Mode, save SaveData) *Progress {
	return &Progress{modes: modes, save: save}
}

// Modes returns the configured modes.
func (p *Progress) Modes() []Mode { return p.modes }

// Cleared reports whether level i of st is cleared.
func (p *Progress) Cleared(st *Stage, i int) bool {
	flags := p.save.Flags(st.ID)
	return i >= 0 && i < len(flags) && flags[i] != 0
}

// MarkCleared records level i of st as cleared. It reports whether the
// level was not cleared before. The flag array is resized to the stage's
// level count.
func (p *Progress) MarkCleared(st *Stage, i int) (bool, error) {
	if p.Cleared(st, i) {
		return false, nil
	}
	flags := make([]int, len(st.Levels))
	copy(flags, p.save.Flags(st.ID))
	if i >= 0 && i < len(flags) {
		flags[i] = 1
	}
	return true, p.save.SetFlags(st.ID, flags)
}

// StageComplete reports whether every level of st is cleared.
func (p *Progress) StageComplete(st *Stage) bool {
	for i := range st.Levels {
		if !p.Cleared(st, i) {
			return false
		}
	}
	return true
}

// stageIDComplete reports completion from the save data alone. Flag arrays
// are always written at full stage length, so an existing array of ones
// means every level is cleared.
func (p *Progress) stageIDComplete(id string) bool {
	flags := p.save.Flags(id)
	if len(flags) == 0 {
		return false
	}
	for _, f := range flags {
		if f == 0 {
			return false
		}
	}
	return true
}

// ModeComplete reports whether every stage of mode m is fully cleared.
func (p *Progress) ModeComplete(m int) bool {
	if m < 0 || m >= len(p.modes) {
		return false
	}
	for _, name := range p.modes[m].Stages {
		if !p.stageIDComplete(StageID(name)) {
			return false
		}
	}
	return true
}

// Unlocked reports whether mode m can be played.
func (p *Progress) Unlocked(m int) bool {
	if m < 0 || m >= len(p.modes) {
		return false
	}
	return m == 0 || p.ModeComplete(m-1)
}

// FirstUncleared returns the first uncleared level of st, or 0 when all
// are cleared.
func (p *Progress) FirstUncleared(st *Stage) int {
	for i := range st.Levels {
		if !p.Cleared(st, i) {
			return i
		}
	}
	return 0
}

// NextLevel returns the next uncleared level after current, wrapping
// around, or 0 when every level is cleared.
func (p *Progress) NextLevel(st *Stage, current int) int {
	n := len(st.Levels)
	for k := 1; k <= n; k++ {
		i := (current + k) % n
		if !p.Cleared(st, i) {
			return i
		}
	}
	return 0
}

// NextStage returns the stage after (mode, stage): the next stage of the
// same mode, or the first stage of the next mode once it is unlocked. ok is
// false when there is nowhere to go.
func (p *Progress) NextStage(mode, stage int) (nextMode, nextStage int, ok bool) {
	if mode < 0 || mode >= len(p.modes) {
		return 0, 0, false
	}
	if stage+1 < len(p.modes[mode].Stages) {
		return mode, stage + 1, true
	}
	if mode+1 < len(p.modes) && p.Unlocked(mode+1) && len(p.modes[mode+1].Stages) > 0 {
		return mode + 1, 0, true
	}
	return 0, 0, false
}
