package relaykey

func zeroBytes(n int) []byte {
	return make([]byte, n)
}

func seqBytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
