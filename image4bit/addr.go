package image4bit

// Nibble selects one 4-bit half of a packed byte.
type Nibble uint8

const (
	// High is the left pixel of a byte (bits 7..4). Even virtual x maps here.
	High Nibble = 0
	// Low is the right pixel of a byte (bits 3..0). Odd virtual x maps here.
	Low Nibble = 1
)

// Mask returns the bits of a byte covered by the nibble.
func (n Nibble) Mask() byte {
	if n == Low {
		return 0x0F
	}
	return 0xF0
}

// Shift returns the left shift that moves a 4-bit level into the nibble.
func (n Nibble) Shift() uint {
	if n == Low {
		return 0
	}
	return 4
}

// Get extracts the 4-bit level stored in the nibble of b.
func (n Nibble) Get(b byte) byte {
	return (b >> n.Shift()) & 0x0F
}

// Put returns b with the nibble replaced by level.
func (n Nibble) Put(b, level byte) byte {
	return (b &^ n.Mask()) | ((level & 0x0F) << n.Shift())
}

// Or returns b with level OR-ed into the nibble. It never clears bits.
func (n Nibble) Or(b, level byte) byte {
	return b | ((level & 0x0F) << n.Shift())
}

func (n Nibble) String() string {
	if n == Low {
		return "low"
	}
	return "high"
}

// ToPhysical maps a virtual (pixel) x coordinate to the byte holding it and the
// nibble inside that byte.
//
// Two virtual addresses share one physical address:
//
//	[0, 1] [2, 3] [4, 5]   virtual
//	   0      1      2     physical
//
// Every read or write of packed pixels in this module goes through here.
func ToPhysical(vx int) (byteIndex int, n Nibble) {
	return vx >> 1, Nibble(vx & 1)
}

// PixOffset returns the buffer offset and nibble of pixel (vx, y) in a packed
// buffer with stride bytes per row.
func PixOffset(stride, vx, y int) (offset int, n Nibble) {
	bx, n := ToPhysical(vx)
	return y*stride + bx, n
}
