package domain

// AdvisorSlot selects one of the student's two advisor assignments (dospem 1/2).
type AdvisorSlot string

const (
	SlotFirst  AdvisorSlot = "dospem_1"
	SlotSecond AdvisorSlot = "dospem_2"
)

func (s AdvisorSlot) String() string {
	return string(s)
}

func (s AdvisorSlot) IsValid() bool {
	return s == SlotFirst || s == SlotSecond
}
