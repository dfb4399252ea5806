package cbor

// finishBool reconstructs a boolean from an already-read lead byte.
func finishBool(lead byte) (bool, error) {
	switch lead {
	case makeByte(majorTypeSimple, simpleFalse):
		return false, nil
	case makeByte(majorTypeSimple, simpleTrue):
		return true, nil
	}
	return false, TypeError{Method: BoolType, Encoded: getType(lead)}
}

// ReadBool reads a boolean.
func (d *Decoder) ReadBool() (bool, error) {
	lead, err := d.readLead()
	if err != nil {
		return false, err
	}
	return finishBool(lead)
}

// ReadNull consumes a null marker. Any other item fails with ErrNotNil,
// and the lead byte is consumed either way.
func (d *Decoder) ReadNull() error {
	lead, err := d.readLead()
	if err != nil {
		return err
	}
	if lead != leadNull {
		return ErrNotNil
	}
	return nil
}

// ReadUndefined consumes an undefined marker.
func (d *Decoder) ReadUndefined() error {
	lead, err := d.readLead()
	if err != nil {
		return err
	}
	if lead != leadUndef {
		return ErrNotUndefined
	}
	return nil
}

// ReadBreak consumes the break stop-code that terminates an
// indefinite-length item. Any other item fails with ErrNotBreak.
func (d *Decoder) ReadBreak() error {
	lead, err := d.readLead()
	if err != nil {
		return err
	}
	if lead != leadBreak {
		return ErrNotBreak
	}
	return nil
}

// ReadSimpleValue reads a simple value (major type 7): either encoded
// directly in the lead byte (0-23) or in a one-byte extension (32-255).
// One-byte extensions below 32 duplicate the direct range and are not
// well-formed.
func (d *Decoder) ReadSimpleValue() (uint8, error) {
	add, err := d.expectMajor(majorTypeSimple)
	if err != nil {
		return 0, err
	}
	if add <= addInfoDirect {
		return add, nil
	}
	if add != addInfoUint8 {
		return 0, InvalidAdditionalInfoError{Major: majorTypeSimple, Info: add}
	}
	v, err := d.src.ReadByte()
	if err != nil {
		return 0, err
	}
	if v < 32 {
		return 0, InvalidAdditionalInfoError{Major: majorTypeSimple, Info: addInfoUint8}
	}
	return v, nil
}
