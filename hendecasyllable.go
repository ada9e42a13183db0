package scansion

func hendecasyllableRules(m *Meter) *rules {
	return &rules{
		meter: m,
		fixed: func(count int) []int { return []int{count - 2} },
		repairs: []repair{
			{NoteInvalidStart, correctHendecasyllableStart},
			{NoteAntepenultChain, correctAntepenultChain},
		},
	}
}

// correctHendecasyllableStart stresses the third syllable, which opens the
// choriamb.
func correctHendecasyllableStart(raw string) string {
	return markAt(raw, 2, Stressed)
}

// correctAntepenultChain forces the -U-U- that runs up to the final
// syllable, the close of the choriamb and the two iambs after it.
func correctAntepenultChain(raw string) string {
	n := len(raw)
	if n < 6 {
		return raw
	}
	return raw[:n-6] + "-U-U-" + raw[n-1:]
}
