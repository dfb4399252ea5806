package cbor

// Skip consumes the next item, including all nested content, without
// materializing any of it. String payloads are discarded in place, so
// skipping a large embedded blob does not allocate proportionally.
func (d *Decoder) Skip() error {
	return d.skipNext(0)
}

func (d *Decoder) skipNext(depth int) error {
	if depth >= recursionLimit {
		return ErrMaxDepthExceeded
	}
	lead, err := d.readLead()
	if err != nil {
		return err
	}
	return d.skipItem(lead, depth)
}

// skipItem skips the item whose lead byte has already been consumed.
func (d *Decoder) skipItem(lead byte, depth int) error {
	major := getMajorType(lead)
	add := getAddInfo(lead)
	switch major {
	case majorTypeUint, majorTypeNegInt:
		_, err := d.resolveUint(major, add)
		return err
	case majorTypeBytes, majorTypeText:
		return d.skipString(major, add)
	case majorTypeArray:
		n, err := d.readSize(major, add)
		if err != nil {
			return err
		}
		if n < 0 {
			return d.skipUntilBreak(depth)
		}
		for ; n > 0; n-- {
			if err := d.skipNext(depth + 1); err != nil {
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
			return d.skipPairsUntilBreak(depth)
		}
		for ; n > 0; n-- {
			if err := d.skipNext(depth + 1); err != nil {
				return err
			}
			if err := d.skipNext(depth + 1); err != nil {
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
		return d.skipNext(depth + 1)
	default:
		switch add {
		case simpleFloat16:
			return d.discard(2)
		case simpleFloat32:
			return d.discard(4)
		case simpleFloat64:
			return d.discard(8)
		case addInfoUint8:
			return d.discard(1)
		case addInfoIndefinite:
			// A break with no enclosing indefinite item.
			return ErrNotBreak
		default:
			if add > addInfoDirect {
				return InvalidAdditionalInfoError{Major: major, Info: add}
			}
			return nil
		}
	}
}

// skipString skips a byte or text string, definite or indefinite, given
// its already-decoded major type and additional info.
func (d *Decoder) skipString(major, add uint8) error {
	if add != addInfoIndefinite {
		n, err := d.stringLen(major, add)
		if err != nil {
			return err
		}
		return d.discard(n)
	}
	for {
		lead, err := d.readLead()
		if err != nil {
			return err
		}
		if lead == leadBreak {
			return nil
		}
		if m := getMajorType(lead); m != major {
			return badPrefix(major, m)
		}
		ca := getAddInfo(lead)
		if ca == addInfoIndefinite {
			return InvalidAdditionalInfoError{Major: major, Info: ca}
		}
		n, err := d.stringLen(major, ca)
		if err != nil {
			return err
		}
		if err := d.discard(n); err != nil {
			return err
		}
	}
}

func (d *Decoder) skipUntilBreak(depth int) error {
	for {
		lead, err := d.readLead()
		if err != nil {
			return err
		}
		if lead == leadBreak {
			return nil
		}
		if err := d.skipItem(lead, depth+1); err != nil {
			return err
		}
	}
}

// skipPairsUntilBreak skips map entries until a break. The break is
// only legal at a key position.
func (d *Decoder) skipPairsUntilBreak(depth int) error {
	for {
		lead, err := d.readLead()
		if err != nil {
			return err
		}
		if lead == leadBreak {
			return nil
		}
		if err := d.skipItem(lead, depth+1); err != nil {
			return err
		}
		if err := d.skipNext(depth + 1); err != nil {
			return err
		}
	}
}
