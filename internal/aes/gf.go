package aes

// poly is the AES reduction polynomial x⁸ + x⁴ + x³ + x + 1.
const poly = 1<<8 | 1<<4 | 1<<3 | 1<<1 | 1<<0

// powx[i] is x^i in GF(2⁸). Rcon[i] in FIPS-197 is powx[i-1] << 24.
var powx = [16]byte{
	0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80,
	0x1b, 0x36, 0x6c, 0xd8, 0xab, 0x4d, 0x9a, 0x2f,
}

// Mul multiplies a and b in GF(2⁸) modulo poly (FIPS-197 4.2).
//
// For example {57}·{13} = {fe}:
//
//	{57}·{02} = {ae}
//	{57}·{04} = {47}
//	{57}·{08} = {8e}
//	{57}·{10} = {07}
//	{57}·{13} = {57}·({01}+{02}+{10}) = {57}^{ae}^{07} = {fe}
func Mul(a, b byte) byte {
	var product byte
	pow := uint16(a)
	for bit := uint16(1); bit < 0x100; bit <<= 1 {
		// Invariant: bit == 1<<n, pow == a·xⁿ
		if uint16(b)&bit != 0 {
			product ^= byte(pow)
		}
		pow <<= 1
		if pow&0x100 != 0 {
			pow ^= poly
			pow &= 0xff
		}
	}
	return product
}

// inverse returns b⁻¹ in GF(2⁸), computed as b²⁵⁴. inverse(0) is 0.
func inverse(b byte) byte {
	// 254 = 0b11111110
	result := byte(1)
	sq := b
	for e := 254; e > 0; e >>= 1 {
		if e&1 != 0 {
			result = Mul(result, sq)
		}
		sq = Mul(sq, sq)
	}
	return result
}
