// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lipi

// FieldReader iterates the fields of one struct body without building
// an [Entries] tree. Hand-written decoders use it to pull known keys
// directly into Go values and skip the rest:
//
//	fields, err := lipi.NewFieldReader(cursor)
//	if err != nil {
//		return err
//	}
//	for {
//		ok, err := fields.Next()
//		if err != nil || !ok {
//			return err
//		}
//		if fields.Key() == 1 {
//			if p.Name, err = lipi.ReadField[string](fields); err != nil {
//				return err
//			}
//		}
//	}
//
// A field whose payload was not consumed is skipped by the next call
// to Next.
type FieldReader struct {
	cursor    *Cursor
	options   ParseOptions
	remaining int
	pending   bool
	key       uint16
	tag       Tag
}

// NewFieldReader reads the field count at the cursor and returns a
// reader positioned before the first field.
func NewFieldReader(cursor *Cursor) (*FieldReader, error) {
	return ParseOptions{}.NewFieldReader(cursor)
}

// NewFieldReader is [NewFieldReader] with these options; nested values
// read through the reader honor MaxDepth.
func (o ParseOptions) NewFieldReader(cursor *Cursor) (*FieldReader, error) {
	count, err := o.parser(cursor).count()
	if err != nil {
		return nil, err
	}
	return &FieldReader{cursor: cursor, options: o, remaining: count}, nil
}

// Remaining returns the number of fields not yet returned by Next.
func (r *FieldReader) Remaining() int { return r.remaining }

// Next advances to the next field header. It returns false once every
// counted field has been read.
func (r *FieldReader) Next() (bool, error) {
	if r.pending {
		if err := r.Skip(); err != nil {
			return false, err
		}
	}
	if r.remaining == 0 {
		return false, nil
	}
	key, tag, err := r.cursor.readKey()
	if err != nil {
		return false, err
	}
	r.remaining--
	r.key, r.tag, r.pending = key, tag, true
	return true, nil
}

// Key returns the current field's key.
func (r *FieldReader) Key() uint16 { return r.key }

// Tag returns the current field's wire tag.
func (r *FieldReader) Tag() Tag { return r.tag }

// Skip consumes the current field's payload.
func (r *FieldReader) Skip() error {
	_, err := r.Value()
	return err
}

// Value parses the current field's payload into a tree.
func (r *FieldReader) Value() (Value, error) {
	if !r.pending {
		return nil, nil
	}
	r.pending = false
	value, err := r.options.parser(r.cursor).nested().value(r.tag)
	if err != nil {
		return nil, withKey(r.key, err)
	}
	return value, nil
}

// ReadField converts the current field's payload to T with the
// widening rules of [DecodeField].
func ReadField[T Scalar](r *FieldReader) (T, error) {
	start := r.cursor.Offset()
	value, err := DecodeField[T](r.tag, r.cursor)
	if err != nil {
		// A rejected tag leaves the payload in place for Next to skip.
		r.pending = r.cursor.Offset() == start
		return value, withKey(r.key, err)
	}
	r.pending = false
	return value, nil
}

// ReadFieldInto converts the current field's payload into target with
// the rules of [Convert]: records, slices, maps and [Unmarshaler]
// implementations are all accepted.
func ReadFieldInto(r *FieldReader, target any) error {
	value, err := r.Value()
	if err != nil {
		return err
	}
	if err := convertAny(value, target); err != nil {
		return withKey(r.key, err)
	}
	return nil
}
