package domain

// FileType is the iftype enumeration.
type FileType int32

const (
	ITime FileType = 1  // time series
	IRLim FileType = 2  // spectral, real and imaginary
	IAmph FileType = 3  // spectral, amplitude and phase
	IXY   FileType = 4  // general x versus y
	IXYZ  FileType = 51 // general xyz
)

func (t FileType) String() string {
	switch t {
	case ITime:
		return "ITIME"
	case IRLim:
		return "IRLIM"
	case IAmph:
		return "IAMPH"
	case IXY:
		return "IXY"
	case IXYZ:
		return "IXYZ"
	case FileType(UndefinedInt):
		return "UNDEFINED"
	}
	return "UNKNOWN"
}

// Logical is a SAC boolean word.
type Logical int32

const (
	False Logical = 0
	True  Logical = 1
)

func (l Logical) Bool() bool {
	return l != False
}
