// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package udlg

import "fmt"

// GraphStore is the in-memory model of a decoded record stream: an
// ordered list of records plus an id -> record index. It is the
// replacement for the source's recursive tree search (spec §9): lookups
// are O(1) against a map built incrementally during decode instead of a
// walk over the accumulated tree.
type GraphStore struct {
	Records    []Record
	byObjectID map[int32]int // object id -> index into Records

	// inFlight holds class-with-types records that have been registered
	// (so an id lookup made while decoding their own Values, such as a
	// nested ClassWithId whose MetadataID names the enclosing class, finds
	// them) but whose Values haven't finished decoding yet. It never leaks into
	// Records; the source's "__temp_record" tombstone has no equivalent
	// here because it's a separate map, not a list entry to strip.
	inFlight map[int32]Record
}

// NewGraphStore returns an empty store ready to accumulate records during
// decode, or to be populated before an encode pass.
func NewGraphStore() *GraphStore {
	return &GraphStore{
		byObjectID: make(map[int32]int),
		inFlight:   make(map[int32]Record),
	}
}

// Append adds r to the record list and indexes its object id, if it
// declares one.
func (s *GraphStore) Append(r Record) {
	s.Records = append(s.Records, r)
	if id, ok := objectIDOf(r); ok {
		s.byObjectID[id] = len(s.Records) - 1
	}
}

// BeginInFlight registers a partially-decoded class-with-types record
// under its object id before its member values are read, so
// RecordByObjectID and ParentOf calls made while those values decode can
// resolve the enclosing class. MemberReference values are decoded as
// plain ids and never looked up.
func (s *GraphStore) BeginInFlight(id int32, r Record) {
	s.inFlight[id] = r
}

// EndInFlight removes the in-flight placeholder for id once its values
// have finished decoding; the finished record is appended to Records by
// the caller via Append.
func (s *GraphStore) EndInFlight(id int32) {
	delete(s.inFlight, id)
}

// RecordByObjectID returns the record declaring id, checking the
// finished list first and falling back to any in-flight placeholder.
func (s *GraphStore) RecordByObjectID(id int32) (Record, bool) {
	if idx, ok := s.byObjectID[id]; ok {
		return s.Records[idx], true
	}
	if r, ok := s.inFlight[id]; ok {
		return r, true
	}
	return nil, false
}

// ParentOf resolves a ClassWithId.MetadataID to the ClassInfo and
// MemberTypeInfo of the class-with-types record whose ClassInfo.ObjectID
// equals metadataID.
func (s *GraphStore) ParentOf(metadataID int32) (ClassInfo, MemberTypeInfo, error) {
	r, ok := s.RecordByObjectID(metadataID)
	if !ok {
		return ClassInfo{}, MemberTypeInfo{}, fmt.Errorf("%w: metadata id %d", ErrUnresolvedMetadata, metadataID)
	}
	ci, mti, ok := classMetadataOf(r)
	if !ok {
		return ClassInfo{}, MemberTypeInfo{}, fmt.Errorf("%w: metadata id %d does not name a typed class record", ErrUnresolvedMetadata, metadataID)
	}
	return ci, mti, nil
}
