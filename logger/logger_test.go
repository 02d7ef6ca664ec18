package logger

type testSink struct {
	buf []byte
}

func (s *testSink) Write(buf []byte) (int, error) {
	s.buf = buf
	return len(buf), nil
}
