package domain

import (
	"bytes"
	"encoding/binary"
	"math"
)

// HeaderSize is the encoded size of a version 6 SAC header.
const HeaderSize = 632

// HeaderVersion is the value written into NVHdr on every write.
const HeaderVersion int32 = 6

// MaxKnownVersion is the newest header version a reader may encounter.
const MaxKnownVersion int32 = 7

// Undefined markers used by SAC for unset header fields.
const (
	UndefinedFloat  float32 = -12345.0
	UndefinedInt    int32   = -12345
	UndefinedString         = "-12345  "
)

const (
	floatWords   = 70
	intWords     = 15
	enumWords    = 20
	logicalWords = 5
	wordLen      = 4
	keyLen       = 8
)

// byte offsets of each header section
const (
	offFloats   = 0
	offInts     = offFloats + floatWords*wordLen
	offEnums    = offInts + intWords*wordLen
	offLogicals = offEnums + enumWords*wordLen
	offStrings  = offLogicals + logicalWords*wordLen
)

// Byte offsets of header words read before a full decode.
const (
	VersionOffset = offInts + 6*wordLen
	NPtsOffset    = offInts + 9*wordLen
)

// Header is the fixed SAC header record. Fields are laid out in file order so
// the struct can be encoded and decoded with encoding/binary directly.
type Header struct {
	Delta        float32
	DepMin       float32
	DepMax       float32
	Scale        float32
	ODelta       float32
	B            float32
	E            float32
	O            float32
	A            float32
	Fmt          float32
	T            [10]float32
	F            float32
	Resp         [10]float32
	Stla         float32
	Stlo         float32
	Stel         float32
	Stdp         float32
	Evla         float32
	Evlo         float32
	Evel         float32
	Evdp         float32
	Mag          float32
	User         [10]float32
	Dist         float32
	Az           float32
	Baz          float32
	Gcarc        float32
	SB           float32
	SDelta       float32
	DepMen       float32
	CmpAz        float32
	CmpInc       float32
	XMinimum     float32
	XMaximum     float32
	YMinimum     float32
	YMaximum     float32
	UnusedFloats [7]float32

	NzYear   int32
	NzJDay   int32
	NzHour   int32
	NzMin    int32
	NzSec    int32
	NzMSec   int32
	NVHdr    int32
	NOrID    int32
	NEvID    int32
	NPts     int32
	NSNPts   int32
	NWfID    int32
	NXSize   int32
	NYSize   int32
	Unused15 int32

	IFType      FileType
	IDep        int32
	IZType      int32
	Unused16    int32
	IInst       int32
	IStReg      int32
	IEvReg      int32
	IEvTyp      int32
	IQual       int32
	ISynth      int32
	IMagTyp     int32
	IMagSrc     int32
	IBody       int32
	UnusedEnums [7]int32

	LEven    Logical
	LPSPol   Logical
	LOvrOK   Logical
	LCalDA   Logical
	Unused27 Logical

	KStnm  [keyLen]byte
	KEvnm  [2 * keyLen]byte
	KHole  [keyLen]byte
	KO     [keyLen]byte
	KA     [keyLen]byte
	KT     [10][keyLen]byte
	KF     [keyLen]byte
	KUser  [3][keyLen]byte
	KCmpnm [keyLen]byte
	KNetwk [keyLen]byte
	KDatrd [keyLen]byte
	KInst  [keyLen]byte
}

var defaultRecord = newDefaultRecord()

// newDefaultRecord encodes an all-undefined header. Logicals stay false.
func newDefaultRecord() []byte {
	buf := make([]byte, HeaderSize)
	order := binary.NativeEndian

	undef := UndefinedInt
	for off := offFloats; off < offInts; off += wordLen {
		order.PutUint32(buf[off:], math.Float32bits(UndefinedFloat))
	}
	for off := offInts; off < offLogicals; off += wordLen {
		order.PutUint32(buf[off:], uint32(undef))
	}
	for off := offStrings; off < HeaderSize; off += keyLen {
		copy(buf[off:], UndefinedString)
	}

	return buf
}

// NewHeader returns the SAC default header: every field undefined, logicals
// false, no samples and the current header version.
func NewHeader() Header {
	var h Header
	if _, err := binary.Decode(defaultRecord, binary.NativeEndian, &h); err != nil {
		panic(err)
	}

	h.NVHdr = HeaderVersion
	h.NPts = 0
	return h
}

// PrepareForWrite forces the fields every written file carries and derives
// the amplitude bounds from the first NPts samples.
func (h *Header) PrepareForWrite(samples []float32) {
	h.IFType = ITime
	h.LEven = True
	h.LOvrOK = True
	h.NVHdr = HeaderVersion

	n := int(h.NPts)
	if n > len(samples) {
		n = len(samples)
	}
	h.DepMin, h.DepMax = AmplitudeRange(samples[:max(n, 0)])
}

// KnownVersion reports whether v is a header version a reader accepts.
func KnownVersion(v int32) bool {
	return v >= 1 && v <= MaxKnownVersion
}

func (h *Header) Station() string    { return key(h.KStnm[:]) }
func (h *Header) Network() string    { return key(h.KNetwk[:]) }
func (h *Header) Component() string  { return key(h.KCmpnm[:]) }
func (h *Header) Event() string      { return key(h.KEvnm[:]) }
func (h *Header) Instrument() string { return key(h.KInst[:]) }

func (h *Header) SetStation(s string)    { setKey(h.KStnm[:], s) }
func (h *Header) SetNetwork(s string)    { setKey(h.KNetwk[:], s) }
func (h *Header) SetComponent(s string)  { setKey(h.KCmpnm[:], s) }
func (h *Header) SetEvent(s string)      { setKey(h.KEvnm[:], s) }
func (h *Header) SetInstrument(s string) { setKey(h.KInst[:], s) }

// key trims the space and NUL padding of a character field.
func key(b []byte) string {
	return string(bytes.TrimRight(b, " \x00"))
}

func setKey(dst []byte, s string) {
	n := copy(dst, s)
	for i := n; i < len(dst); i++ {
		dst[i] = ' '
	}
}
