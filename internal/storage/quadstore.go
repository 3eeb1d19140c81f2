package storage

import (
	"bytes"
	"fmt"

	"github.com/aleksaelezovic/rdfkit/internal/encoding"
	"github.com/aleksaelezovic/rdfkit/pkg/rdf"
)

// QuadStore persists RDF quads. Each quad is written to two orderings
// (SPOG for containment checks and dumps, GSPO for per-graph scans), with
// hashed term strings interned in the id2str table.
type QuadStore struct {
	storage Storage
	encoder *encoding.TermEncoder
	decoder *encoding.TermDecoder
}

func NewQuadStore(storage Storage) *QuadStore {
	return &QuadStore{
		storage: storage,
		encoder: encoding.NewTermEncoder(),
		decoder: encoding.NewTermDecoder(),
	}
}

func (s *QuadStore) Close() error {
	return s.storage.Close()
}

// InsertQuads inserts quads in a single transaction.
func (s *QuadStore) InsertQuads(quads []*rdf.Quad) error {
	txn, err := s.storage.Begin(true)
	if err != nil {
		return err
	}
	defer txn.Rollback()

	for _, quad := range quads {
		if err := s.insertQuadInTxn(txn, quad); err != nil {
			return err
		}
	}
	return txn.Commit()
}

// InsertQuad inserts a single quad.
func (s *QuadStore) InsertQuad(quad *rdf.Quad) error {
	return s.InsertQuads([]*rdf.Quad{quad})
}

// InsertTriple inserts a triple into the default graph.
func (s *QuadStore) InsertTriple(triple *rdf.Triple) error {
	return s.InsertQuad(triple.AsQuad())
}

func (s *QuadStore) insertQuadInTxn(txn Transaction, quad *rdf.Quad) error {
	encs, err := s.encodeQuad(txn, quad, true)
	if err != nil {
		return err
	}
	subjEnc, predEnc, objEnc, graphEnc := encs[0], encs[1], encs[2], encs[3]

	emptyValue := []byte{}
	if err := txn.Set(TableSPOG, s.encoder.EncodeQuadKey(subjEnc, predEnc, objEnc, graphEnc), emptyValue); err != nil {
		return err
	}
	if err := txn.Set(TableGSPO, s.encoder.EncodeQuadKey(graphEnc, subjEnc, predEnc, objEnc), emptyValue); err != nil {
		return err
	}

	if !quad.InDefaultGraph() {
		if err := txn.Set(TableGraphs, graphEnc[:], emptyValue); err != nil {
			return err
		}
	}
	return nil
}

// encodeQuad encodes all four positions, interning lookup strings when
// store is set.
func (s *QuadStore) encodeQuad(txn Transaction, quad *rdf.Quad, store bool) ([4]encoding.EncodedTerm, error) {
	var encs [4]encoding.EncodedTerm
	terms := [4]rdf.Term{quad.Subject, quad.Predicate, quad.Object, quad.Graph}
	names := [4]string{"subject", "predicate", "object", "graph"}

	for i, term := range terms {
		enc, str, err := s.encoder.EncodeTerm(term)
		if err != nil {
			return encs, fmt.Errorf("failed to encode %s: %w", names[i], err)
		}
		if store {
			if err := s.storeString(txn, enc, str); err != nil {
				return encs, err
			}
		}
		encs[i] = enc
	}
	return encs, nil
}

func (s *QuadStore) storeString(txn Transaction, encoded encoding.EncodedTerm, str *string) error {
	if str == nil {
		return nil
	}

	key := encoded[1:] // hash portion
	value := []byte(*str)

	existing, err := txn.Get(TableID2Str, key)
	if err == nil && bytes.Equal(existing, value) {
		return nil
	}
	if err != nil && err != ErrNotFound {
		return err
	}
	return txn.Set(TableID2Str, key, value)
}

// ContainsQuad reports whether the quad is stored.
func (s *QuadStore) ContainsQuad(quad *rdf.Quad) (bool, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return false, err
	}
	defer txn.Rollback()

	encs, err := s.encodeQuad(txn, quad, false)
	if err != nil {
		return false, err
	}

	key := s.encoder.EncodeQuadKey(encs[0], encs[1], encs[2], encs[3])
	_, err = txn.Get(TableSPOG, key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of stored quads.
func (s *QuadStore) Count() (int64, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return 0, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableSPOG, nil, nil)
	if err != nil {
		return 0, err
	}
	defer it.Close()

	count := int64(0)
	for it.Next() {
		count++
	}
	return count, nil
}

// Quads returns every stored quad, in SPOG key order.
func (s *QuadStore) Quads() ([]*rdf.Quad, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return nil, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableSPOG, nil, nil)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []*rdf.Quad
	for it.Next() {
		key := it.Key()
		if len(key) != 4*encoding.EncodedTermSize {
			return nil, fmt.Errorf("malformed spog key of %d bytes", len(key))
		}
		var terms [4]rdf.Term
		for i := 0; i < 4; i++ {
			var enc encoding.EncodedTerm
			copy(enc[:], key[i*encoding.EncodedTermSize:(i+1)*encoding.EncodedTermSize])
			term, err := s.decodeTerm(txn, enc)
			if err != nil {
				return nil, err
			}
			terms[i] = term
		}
		out = append(out, rdf.NewQuad(terms[0], terms[1], terms[2], terms[3]))
	}
	return out, nil
}

// Graphs returns the distinct named graph terms.
func (s *QuadStore) Graphs() ([]rdf.Term, error) {
	txn, err := s.storage.Begin(false)
	if err != nil {
		return nil, err
	}
	defer txn.Rollback()

	it, err := txn.Scan(TableGraphs, nil, nil)
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []rdf.Term
	for it.Next() {
		var enc encoding.EncodedTerm
		copy(enc[:], it.Key())
		term, err := s.decodeTerm(txn, enc)
		if err != nil {
			return nil, err
		}
		out = append(out, term)
	}
	return out, nil
}

func (s *QuadStore) decodeTerm(txn Transaction, enc encoding.EncodedTerm) (rdf.Term, error) {
	var stringValue *string
	if encoding.NeedsLookup(enc) {
		raw, err := txn.Get(TableID2Str, enc[1:])
		if err != nil {
			return nil, fmt.Errorf("missing id2str entry: %w", err)
		}
		str := string(raw)
		stringValue = &str
	}
	return s.decoder.DecodeTerm(enc, stringValue)
}
