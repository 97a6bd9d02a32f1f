package touch

// DefaultAddress is the sensor's 7-bit bus address with ADDR tied to GND.
// Tied to VDD, SDA or SCL it answers on 0x5B, 0x5C or 0x5D.
const DefaultAddress = 0x5A

// Register addresses.
const (
	regTouchStatus = 0x00

	// Baseline filter, rising.
	regMHDR = 0x2B
	regNHDR = 0x2C
	regNCLR = 0x2D
	regFDLR = 0x2E

	// Baseline filter, falling.
	regMHDF = 0x2F
	regNHDF = 0x30
	regNCLF = 0x31
	regFDLF = 0x32

	// Baseline filter, touched.
	regNHDT = 0x33
	regNCLT = 0x34
	regFDLT = 0x35

	// Electrode 0 thresholds; electrode n is at +2n.
	regTouchThreshold0   = 0x41
	regReleaseThreshold0 = 0x42

	regDebounce = 0x5B
	regAFE1     = 0x5C
	regAFE2     = 0x5D
	regECR      = 0x5E

	// Electrode 0 charge current; electrode n is at +n.
	regCDC0 = 0x5F
	// Electrode 0/1 charge time.
	regCDT0 = 0x6C

	regSoftReset = 0x80
)

// Configuration values.
const (
	valSoftReset = 0x63
	valStop      = 0x00
	valMHDNHD    = 0x01
	valNCL       = 0x10
	valFDL       = 0x20
	valFDLT      = 0xFF

	// 3 samples for touch and release detection.
	valDebounce = 0x33
	// 34 samples first filter iteration, 18uA charge current.
	valAFE1 = 0xD2
	// 16uA charge current for electrode 2.
	valCDC2 = 0x10
	// 1us encoding, 10 samples second filter iteration, 16ms period.
	valAFE2 = 0x54

	// Baseline tracking enabled with the first 5 bits loaded; the low
	// nibble is the number of enabled electrodes.
	valECRRun = 0xC0
)

// thresholds holds touch/release values per electrode.
var thresholds = [...]struct{ touch, release uint8 }{
	{15, 7},
	{16, 8},
	{32, 13},
	{32, 13},
	{32, 13},
}

type regWrite struct {
	reg, val uint8
}

// initSequence returns the ordered register writes configuring n electrodes.
// Measurement stays stopped until the final ECR write.
func initSequence(n int) []regWrite {
	seq := []regWrite{
		{regSoftReset, valSoftReset},
		{regECR, valStop},
		{regMHDR, valMHDNHD},
		{regNHDR, valMHDNHD},
		{regNCLR, valNCL},
		{regFDLR, valFDL},
		{regMHDF, valMHDNHD},
		{regNHDF, valMHDNHD},
		{regNCLF, valNCL},
		{regFDLF, valFDL},
		{regNHDT, valMHDNHD},
		{regNCLT, valNCL},
		{regFDLT, valFDLT},
		{regDebounce, valDebounce},
		{regAFE1, valAFE1},
		{regCDC0 + 2, valCDC2},
		{regAFE2, valAFE2},
	}
	for e := 0; e < n; e++ {
		off := uint8(2 * e)
		seq = append(seq,
			regWrite{regTouchThreshold0 + off, thresholds[e].touch},
			regWrite{regReleaseThreshold0 + off, thresholds[e].release},
		)
	}
	return append(seq, regWrite{regECR, valECRRun | uint8(n)})
}
