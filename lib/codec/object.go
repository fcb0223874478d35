// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the object as a JSON object with decimal string
// keys, in member order.
func (o Object) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	out.WriteByte('{')
	for index, member := range o {
		if index > 0 {
			out.WriteByte(',')
		}
		out.WriteByte('"')
		out.WriteString(strconv.FormatUint(uint64(member.Key), 10))
		out.WriteString(`":`)
		value, err := json.Marshal(member.Value)
		if err != nil {
			return nil, err
		}
		out.Write(value)
	}
	out.WriteByte('}')
	return out.Bytes(), nil
}

// MarshalYAML returns a mapping node with integer keys, in member
// order.
func (o Object) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, member := range o {
		key := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.FormatUint(uint64(member.Key), 10),
		}
		value := &yaml.Node{}
		if err := value.Encode(member.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// EncodeMsgpack writes the object as a MessagePack map with unsigned
// integer keys, in member order.
func (o Object) EncodeMsgpack(encoder *msgpack.Encoder) error {
	if err := encoder.EncodeMapLen(len(o)); err != nil {
		return err
	}
	for _, member := range o {
		if err := encoder.EncodeUint(uint64(member.Key)); err != nil {
			return err
		}
		if err := encoder.Encode(member.Value); err != nil {
			return err
		}
	}
	return nil
}

// MarshalCBOR writes the object as a deterministic CBOR map with
// unsigned integer keys. The first member wins for duplicate keys.
func (o Object) MarshalCBOR() ([]byte, error) {
	members := make(map[uint16]any, len(o))
	for _, member := range o {
		if _, duplicate := members[member.Key]; !duplicate {
			members[member.Key] = member.Value
		}
	}
	return encMode.Marshal(members)
}

var (
	_ json.Marshaler        = Object(nil)
	_ yaml.Marshaler        = Object(nil)
	_ msgpack.CustomEncoder = Object(nil)
)
