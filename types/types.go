package types

// ProcessID identifies a simulated process. Zero is reserved for frames nobody owns.
type ProcessID uint32

// FreeOwner is the owner recorded for frames which are not allocated.
const FreeOwner ProcessID = 0

// VirtualAddress is the address as seen by a process.
type VirtualAddress uint32

// PhysicalAddress is the offset of a byte in RAM.
type PhysicalAddress uint32

// FrameIndex is the index of the physical frame.
type FrameIndex int32

// NoFrame terminates the chain of frames belonging to an allocation.
const NoFrame FrameIndex = -1

// MaxQueueSize is the default capacity of the ready queue.
const MaxQueueSize = 10
