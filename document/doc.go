// Package document provides the in-memory JSON value queried by jsonq.
//
// A Value is a tagged variant over null, bool, number, string, array and
// object. Objects keep member insertion order so query results render in the
// order fields were projected, and decoded documents round-trip with their
// original member order.
//
// The zero Value is Missing. It stands for a path that did not resolve and is
// never produced by decoding:
//
//	doc, err := document.Parse([]byte(`{"user": {"name": "alice"}}`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name, ok := doc.Lookup("user.name")  // "alice", true
//	_, ok = doc.Lookup("user.email")     // Missing, false
//
// Values are immutable once built; nothing in this module modifies a Value
// after construction, so one document may be shared by concurrent readers.
package document
