package test

// TokenParserStub resolves any token to a fixed user.
type TokenParserStub struct {
	ID  int64
	Err error
}

// ParseToken returns the configured identifier or error.
func (s TokenParserStub) ParseToken(string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	if s.ID == 0 {
		return 1, nil
	}
	return s.ID, nil
}
