// Package models decodes fantasy_content responses into typed entities.
//
// The service encodes its data irregularly: attribute blocks arrive as lists
// of single-key objects, collections arrive as objects keyed "0".."count-1"
// with a separate "count", and empty collections may be an empty list, an
// empty object or a zero count. The helpers in this package absorb those
// differences so the decoders can stay declarative.
//
// # Decoding
//
// Every entity decodes in two phases. The leading attribute block is flattened
// and coerced into scalar fields, then each following element is inspected for
// a known sub-resource key. Sub-resource fields stay nil when the key is
// absent, so callers can tell "not requested" apart from "requested but
// empty". Unknown keys are ignored.
//
//	league, err := models.DecodeLeague(raw)
//	if err != nil {
//		var de *models.DecodeError
//		if errors.As(err, &de) {
//			log.Printf("schema drift in %s at %s", de.Entity, de.Key)
//		}
//	}
//
// # Coercion
//
// AsInt, AsFloat and AsBool accept native JSON numbers as well as numeric
// strings. null, "" and "-" are absent: the numeric coercers return nil and
// AsBool returns false.
package models
