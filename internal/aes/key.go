package aes

// KeySchedule is the expanded key for one cipher instance. Terms follow
// FIPS-197 5.2: Nk is the key length in words, Nr the number of rounds.
type KeySchedule struct {
	nk  int
	nr  int
	enc []uint32
	dec []uint32 // equivalent inverse cipher, FIPS-197 5.3.5
}

// keyParams maps key byte length to (Nk, Nr), FIPS-197 Figure 4.
func keyParams(n int) (nk, nr int, ok bool) {
	switch n {
	case 16:
		return 4, 10, true
	case 24:
		return 6, 12, true
	case 32:
		return 8, 14, true
	}
	return 0, 0, false
}

// ExpandKey derives the encryption and decryption round keys for a
// 16, 24 or 32 byte key.
func ExpandKey(key []byte) (*KeySchedule, error) {
	nk, nr, ok := keyParams(len(key))
	if !ok {
		return nil, KeySizeError(len(key))
	}
	initTables()

	n := 4 * (nr + 1)
	ks := &KeySchedule{nk: nk, nr: nr, enc: make([]uint32, n), dec: make([]uint32, n)}
	expandEnc(ks.enc, key, nk)
	populateDec(ks.dec, ks.enc, nr)
	return ks, nil
}

// expandEnc is FIPS-197 Figure 11.
func expandEnc(enc []uint32, key []byte, nk int) {
	var i int
	for i = 0; i < nk; i++ {
		enc[i] = getWord(key[4*i:])
	}
	for ; i < len(enc); i++ {
		t := enc[i-1]
		if i%nk == 0 {
			t = subw(RotWord(t)) ^ uint32(powx[i/nk-1])<<24
		} else if nk > 6 && i%nk == 4 {
			t = subw(t)
		}
		enc[i] = enc[i-nk] ^ t
	}
}

// populateDec copies enc and applies InvMixColumn to rounds 1..nr-1.
// Unlike the table-driven layouts the rounds are not reversed, so decryption
// starts from dec[4*nr].
func populateDec(dec, enc []uint32, nr int) {
	copy(dec, enc)
	for round := 1; round < nr; round++ {
		k := 4 * round
		for j := 0; j < 4; j++ {
			dec[k+j] = InvMixColumn(dec[k+j])
		}
	}
}

// Nk returns the key length in 32-bit words.
func (ks *KeySchedule) Nk() int { return ks.nk }

// Nr returns the number of rounds.
func (ks *KeySchedule) Nr() int { return ks.nr }

// Len returns the number of round-key words, always 4*(Nr+1).
func (ks *KeySchedule) Len() int { return len(ks.enc) }

// EncWords returns a copy of the encryption round keys.
func (ks *KeySchedule) EncWords() []uint32 { return append([]uint32(nil), ks.enc...) }

// DecWords returns a copy of the equivalent inverse cipher round keys.
func (ks *KeySchedule) DecWords() []uint32 { return append([]uint32(nil), ks.dec...) }

func (ks *KeySchedule) encRound(round int) []uint32 { return ks.enc[4*round : 4*round+4] }

func (ks *KeySchedule) decRound(round int) []uint32 { return ks.dec[4*round : 4*round+4] }
