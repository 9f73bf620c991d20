package tokens

func AccessClaimsFromToken(tokenStr string, secret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	if err := parse(tokenStr, &claims, secret); err != nil {
		return nil, err
	}
	if claims.Kind != KindAccess {
		return nil, ErrWrongTokenKind
	}
	return &claims, nil
}
