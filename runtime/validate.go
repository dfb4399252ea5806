package cbor

// ValidateWellFormed consumes the next item and checks it for
// structural well-formedness: complete payloads, legal
// additional-information values, matching chunk types inside
// indefinite strings, properly terminated indefinite containers, and
// valid UTF-8 in text strings.
func (d *Decoder) ValidateWellFormed() error {
	return d.validateNext(0)
}

// ValidateDocument checks that b consists of one or more complete,
// well-formed items with no trailing bytes. An empty input fails with
// ErrShortBytes.
func ValidateDocument(b []byte) error {
	if len(b) == 0 {
		return ErrShortBytes
	}
	src := &bytesSource{buf: b}
	d := &Decoder{src: src}
	for len(src.remaining()) > 0 {
		if err := d.ValidateWellFormed(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) validateNext(depth int) error {
	if depth >= recursionLimit {
		return ErrMaxDepthExceeded
	}
	lead, err := d.readLead()
	if err != nil {
		return err
	}
	return d.validateItem(lead, depth)
}

func (d *Decoder) validateItem(lead byte, depth int) error {
	major := getMajorType(lead)
	add := getAddInfo(lead)
	switch major {
	case majorTypeUint, majorTypeNegInt:
		_, err := d.resolveUint(major, add)
		return err
	case majorTypeBytes:
		// Content bytes are unconstrained; length and chunking rules
		// are shared with Skip.
		return d.skipString(major, add)
	case majorTypeText:
		return d.validateText(add)
	case majorTypeArray:
		n, err := d.readSize(major, add)
		if err != nil {
			return err
		}
		if n < 0 {
			return d.validateUntilBreak(depth)
		}
		for ; n > 0; n-- {
			if err := d.validateNext(depth + 1); err != nil {
				return err
			}
		}
		return nil
	case majorTypeMap:
		n, err := d.readSize(major, add)
		if err != nil {
			return err
		}
		if n < 0 {
			return d.validatePairsUntilBreak(depth)
		}
		for ; n > 0; n-- {
			if err := d.validateNext(depth + 1); err != nil {
				return err
			}
			if err := d.validateNext(depth + 1); err != nil {
				return err
			}
		}
		return nil
	case majorTypeTag:
		if add == addInfoIndefinite {
			return InvalidAdditionalInfoError{Major: major, Info: add}
		}
		if _, err := d.resolveUint(major, add); err != nil {
			return err
		}
		return d.validateNext(depth + 1)
	default:
		if add == addInfoUint8 {
			// One-byte simple values below 32 duplicate the direct
			// form and are not well-formed.
			v, err := d.src.ReadByte()
			if err != nil {
				return err
			}
			if v < 32 {
				return InvalidAdditionalInfoError{Major: majorTypeSimple, Info: addInfoUint8}
			}
			return nil
		}
		return d.skipItem(lead, depth)
	}
}

// validateText checks a text string's framing and UTF-8 content. Each
// chunk of an indefinite string must be valid UTF-8 on its own.
func (d *Decoder) validateText(add uint8) error {
	if add != addInfoIndefinite {
		return d.validateTextChunk(add)
	}
	for {
		lead, err := d.readLead()
		if err != nil {
			return err
		}
		if lead == leadBreak {
			return nil
		}
		if m := getMajorType(lead); m != majorTypeText {
			return badPrefix(majorTypeText, m)
		}
		ca := getAddInfo(lead)
		if ca == addInfoIndefinite {
			return InvalidAdditionalInfoError{Major: majorTypeText, Info: ca}
		}
		if err := d.validateTextChunk(ca); err != nil {
			return err
		}
	}
}

func (d *Decoder) validateTextChunk(add uint8) error {
	n, err := d.stringLen(majorTypeText, add)
	if err != nil {
		return err
	}
	v, err := d.readExact(n)
	if err != nil {
		return err
	}
	if !isUTF8Valid(v) {
		return ErrInvalidUTF8
	}
	return nil
}

func (d *Decoder) validateUntilBreak(depth int) error {
	for {
		lead, err := d.readLead()
		if err != nil {
			return err
		}
		if lead == leadBreak {
			return nil
		}
		if err := d.validateItem(lead, depth+1); err != nil {
			return err
		}
	}
}

func (d *Decoder) validatePairsUntilBreak(depth int) error {
	for {
		lead, err := d.readLead()
		if err != nil {
			return err
		}
		if lead == leadBreak {
			return nil
		}
		if err := d.validateItem(lead, depth+1); err != nil {
			return err
		}
		if err := d.validateNext(depth + 1); err != nil {
			return err
		}
	}
}
