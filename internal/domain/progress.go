package domain

// Progress is the student's current thesis milestone.
type Progress string

const (
	ProgressChapterI   Progress = "BAB I"
	ProgressChapterII  Progress = "BAB II"
	ProgressChapterIII Progress = "BAB III"
	ProgressChapterIV  Progress = "BAB IV"
	ProgressChapterV   Progress = "BAB V"
	ProgressCompleted  Progress = "Selesai"
)

var progressSequence = []Progress{
	ProgressChapterI,
	ProgressChapterII,
	ProgressChapterIII,
	ProgressChapterIV,
	ProgressChapterV,
	ProgressCompleted,
}

func (p Progress) String() string {
	return string(p)
}

func (p Progress) index() int {
	for i, step := range progressSequence {
		if step == p {
			return i
		}
	}
	return -1
}

func (p Progress) IsValid() bool {
	return p.index() >= 0
}

func (p Progress) IsFinal() bool {
	return p == progressSequence[len(progressSequence)-1]
}

// Next returns the marker one step after p. ok is false when p is final or unknown,
// in which case p is returned unchanged.
func (p Progress) Next() (next Progress, ok bool) {
	i := p.index()
	if i < 0 || i == len(progressSequence)-1 {
		return p, false
	}
	return progressSequence[i+1], true
}
