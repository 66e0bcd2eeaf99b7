// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package problem

import (
	"encoding/hex"
	"encoding/json"

	"coinjecture.dev/consensus/chainhash"
	"coinjecture.dev/consensus/codec"
	cerrors "coinjecture.dev/consensus/errors"
)

// maxCustomProblemData bounds a Custom problem's opaque payload. Spec §6
// does not name a budget for it explicitly; this module fixes one at the
// same ceiling as transaction data so an unbounded Custom problem can't be
// used to smuggle an oversized payload past the other budgets.
const maxCustomProblemData = 65536

// Hash returns H(canonical_encode(problem)) using the binary form, per
// spec §4.3. This module always hashes the binary encoding of both
// Problem and Solution, resolving the Open Question in spec §9 about
// which canonical encoder backs commitment hashing.
func (p *Problem) Hash() (chainhash.Hash, error) {
	b, err := p.EncodeBinary()
	if err != nil {
		return chainhash.Hash{}, err
	}
	return chainhash.Sum256(b), nil
}

// Hash returns H(canonical_encode(solution)) using the binary form.
func (s *Solution) Hash() (chainhash.Hash, error) {
	b, err := s.EncodeBinary()
	if err != nil {
		return chainhash.Hash{}, err
	}
	return chainhash.Sum256(b), nil
}

// EncodeBinary writes the strict binary form of p: a kind byte followed
// by the variant payload.
func (p *Problem) EncodeBinary() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	w := codec.NewWriter()
	w.WriteUint8(uint8(p.Kind))
	switch p.Kind {
	case KindSubsetSum:
		w.WriteCompactSize(uint64(len(p.SubsetSum.Numbers)))
		for _, n := range p.SubsetSum.Numbers {
			w.WriteInt64(n)
		}
		w.WriteInt64(p.SubsetSum.Target)

	case KindSAT:
		w.WriteUint32(p.SAT.Variables)
		w.WriteCompactSize(uint64(len(p.SAT.Clauses)))
		for _, c := range p.SAT.Clauses {
			w.WriteCompactSize(uint64(len(c.Literals)))
			for _, lit := range c.Literals {
				w.WriteInt32(lit)
			}
		}

	case KindTSP:
		w.WriteUint32(p.TSP.Cities)
		for _, row := range p.TSP.Distances {
			for _, d := range row {
				w.WriteUint64(d)
			}
		}

	case KindCustom:
		w.WriteHash(p.Custom.ProblemID)
		if err := w.WriteVarBytes("data", maxCustomProblemData, p.Custom.Data); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// DecodeProblemBinary parses the strict binary form of a Problem,
// rejecting trailing bytes and field-budget violations.
func DecodeProblemBinary(data []byte) (*Problem, error) {
	r := codec.NewReader(data)
	kindByte, err := r.ReadUint8("kind")
	if err != nil {
		return nil, err
	}
	p := &Problem{Kind: Kind(kindByte)}

	switch p.Kind {
	case KindSubsetSum:
		n, err := r.ReadCompactSize("numbers")
		if err != nil {
			return nil, err
		}
		if n > MaxSubsetSumNumbers {
			return nil, cerrors.OutOfRange("numbers", "exceeds subset-sum numbers budget")
		}
		numbers := make([]int64, n)
		for i := range numbers {
			numbers[i], err = r.ReadInt64("numbers")
			if err != nil {
				return nil, err
			}
		}
		target, err := r.ReadInt64("target")
		if err != nil {
			return nil, err
		}
		p.SubsetSum = &SubsetSumProblem{Numbers: numbers, Target: target}

	case KindSAT:
		variables, err := r.ReadUint32("variables")
		if err != nil {
			return nil, err
		}
		if variables > MaxSATVariables {
			return nil, cerrors.OutOfRange("variables", "exceeds SAT variable budget")
		}
		clauseCount, err := r.ReadCompactSize("clauses")
		if err != nil {
			return nil, err
		}
		clauses := make([]Clause, clauseCount)
		totalLiterals := uint64(0)
		for i := range clauses {
			litCount, err := r.ReadCompactSize("literals")
			if err != nil {
				return nil, err
			}
			totalLiterals += litCount
			if totalLiterals > MaxSATLiterals {
				return nil, cerrors.OutOfRange("clauses", "exceeds SAT total literal budget")
			}
			literals := make([]int32, litCount)
			for j := range literals {
				literals[j], err = r.ReadInt32("literal")
				if err != nil {
					return nil, err
				}
			}
			clauses[i] = Clause{Literals: literals}
		}
		p.SAT = &SATProblem{Variables: variables, Clauses: clauses}

	case KindTSP:
		cities, err := r.ReadUint32("cities")
		if err != nil {
			return nil, err
		}
		if cities > MaxTSPCities {
			return nil, cerrors.OutOfRange("cities", "exceeds TSP city budget")
		}
		distances := make([][]uint64, cities)
		for i := range distances {
			row := make([]uint64, cities)
			for j := range row {
				row[j], err = r.ReadUint64("distances")
				if err != nil {
					return nil, err
				}
			}
			distances[i] = row
		}
		p.TSP = &TSPProblem{Cities: cities, Distances: distances}

	case KindCustom:
		id, err := r.ReadHash("problem_id")
		if err != nil {
			return nil, err
		}
		data, err := r.ReadVarBytes("data", maxCustomProblemData)
		if err != nil {
			return nil, err
		}
		p.Custom = &CustomProblem{ProblemID: chainhash.Hash(id), Data: data}

	default:
		return nil, cerrors.InvalidParameter("kind", "unknown problem kind")
	}

	if err := r.FinishStrict(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// EncodeBinary writes the strict binary form of s.
func (s *Solution) EncodeBinary() ([]byte, error) {
	w := codec.NewWriter()
	w.WriteUint8(uint8(s.Kind))
	switch s.Kind {
	case KindSubsetSum:
		if err := w.WriteVarUint32s("indices", MaxSubsetSumNumbers, s.SubsetSumIndices); err != nil {
			return nil, err
		}
	case KindSAT:
		if len(s.SATAssignment) > MaxSATVariables {
			return nil, cerrors.OutOfRange("assignment", "exceeds SAT variable budget")
		}
		w.WriteCompactSize(uint64(len(s.SATAssignment)))
		for _, v := range s.SATAssignment {
			w.WriteBool(v)
		}
	case KindTSP:
		if err := w.WriteVarUint32s("tour", MaxTSPCities, s.TSPTour); err != nil {
			return nil, err
		}
	case KindCustom:
		if err := w.WriteVarBytes("data", maxCustomProblemData, s.CustomData); err != nil {
			return nil, err
		}
	default:
		return nil, cerrors.InvalidParameter("kind", "unknown solution kind")
	}
	return w.Bytes(), nil
}

// DecodeSolutionBinary parses the strict binary form of a Solution.
func DecodeSolutionBinary(data []byte) (*Solution, error) {
	r := codec.NewReader(data)
	kindByte, err := r.ReadUint8("kind")
	if err != nil {
		return nil, err
	}
	s := &Solution{Kind: Kind(kindByte)}

	switch s.Kind {
	case KindSubsetSum:
		s.SubsetSumIndices, err = r.ReadVarUint32s("indices", MaxSubsetSumNumbers)
	case KindSAT:
		var count uint64
		count, err = r.ReadCompactSize("assignment")
		if err == nil {
			if count > MaxSATVariables {
				return nil, cerrors.OutOfRange("assignment", "exceeds SAT variable budget")
			}
			assignment := make([]bool, count)
			for i := range assignment {
				assignment[i], err = r.ReadBool("assignment")
				if err != nil {
					break
				}
			}
			s.SATAssignment = assignment
		}
	case KindTSP:
		s.TSPTour, err = r.ReadVarUint32s("tour", MaxTSPCities)
	case KindCustom:
		s.CustomData, err = r.ReadVarBytes("data", maxCustomProblemData)
	default:
		return nil, cerrors.InvalidParameter("kind", "unknown solution kind")
	}
	if err != nil {
		return nil, err
	}
	if err := r.FinishStrict(); err != nil {
		return nil, err
	}
	return s, nil
}

// --- JSON form (tagged {kind: payload} objects, per spec §6) ---

type subsetSumJSON struct {
	Numbers []int64 `json:"numbers"`
	Target  int64   `json:"target"`
}

type clauseJSON struct {
	Literals []int32 `json:"literals"`
}

type satJSON struct {
	Variables uint32       `json:"variables"`
	Clauses   []clauseJSON `json:"clauses"`
}

type tspJSON struct {
	Cities    uint32     `json:"cities"`
	Distances [][]uint64 `json:"distances"`
}

type customJSON struct {
	ProblemID string `json:"problem_id"`
	Data      string `json:"data"`
}

// MarshalJSON renders p as a single-key tagged object, e.g.
// {"subset_sum": {"numbers": [...], "target": ...}}.
func (p *Problem) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case KindSubsetSum:
		return json.Marshal(map[string]subsetSumJSON{
			"subset_sum": {Numbers: p.SubsetSum.Numbers, Target: p.SubsetSum.Target},
		})
	case KindSAT:
		clauses := make([]clauseJSON, len(p.SAT.Clauses))
		for i, c := range p.SAT.Clauses {
			clauses[i] = clauseJSON{Literals: c.Literals}
		}
		return json.Marshal(map[string]satJSON{
			"sat": {Variables: p.SAT.Variables, Clauses: clauses},
		})
	case KindTSP:
		return json.Marshal(map[string]tspJSON{
			"tsp": {Cities: p.TSP.Cities, Distances: p.TSP.Distances},
		})
	case KindCustom:
		return json.Marshal(map[string]customJSON{
			"custom": {
				ProblemID: p.Custom.ProblemID.String(),
				Data:      hex.EncodeToString(p.Custom.Data),
			},
		})
	default:
		return nil, cerrors.InvalidParameter("kind", "unknown problem kind")
	}
}

// UnmarshalJSON parses p from its tagged-object form, rejecting unknown
// tags and any field the declared variant schema does not expect.
func (p *Problem) UnmarshalJSON(data []byte) error {
	obj, err := codec.DecodeObject(data, []string{"subset_sum", "sat", "tsp", "custom"}, nil)
	if err != nil {
		return err
	}
	switch {
	case obj["subset_sum"] != nil:
		inner, err := codec.DecodeObject(obj["subset_sum"], []string{"numbers", "target"}, []string{"numbers", "target"})
		if err != nil {
			return err
		}
		var v subsetSumJSON
		if err := inner.Field("numbers", &v.Numbers); err != nil {
			return err
		}
		if err := inner.Field("target", &v.Target); err != nil {
			return err
		}
		p.Kind = KindSubsetSum
		p.SubsetSum = &SubsetSumProblem{Numbers: v.Numbers, Target: v.Target}

	case obj["sat"] != nil:
		inner, err := codec.DecodeObject(obj["sat"], []string{"variables", "clauses"}, []string{"variables", "clauses"})
		if err != nil {
			return err
		}
		var variables uint32
		if err := inner.Field("variables", &variables); err != nil {
			return err
		}
		var rawClauses []clauseJSON
		if err := inner.Field("clauses", &rawClauses); err != nil {
			return err
		}
		clauses := make([]Clause, len(rawClauses))
		for i, c := range rawClauses {
			clauses[i] = Clause{Literals: c.Literals}
		}
		p.Kind = KindSAT
		p.SAT = &SATProblem{Variables: variables, Clauses: clauses}

	case obj["tsp"] != nil:
		inner, err := codec.DecodeObject(obj["tsp"], []string{"cities", "distances"}, []string{"cities", "distances"})
		if err != nil {
			return err
		}
		var v tspJSON
		if err := inner.Field("cities", &v.Cities); err != nil {
			return err
		}
		if err := inner.Field("distances", &v.Distances); err != nil {
			return err
		}
		p.Kind = KindTSP
		p.TSP = &TSPProblem{Cities: v.Cities, Distances: v.Distances}

	case obj["custom"] != nil:
		inner, err := codec.DecodeObject(obj["custom"], []string{"problem_id", "data"}, []string{"problem_id", "data"})
		if err != nil {
			return err
		}
		var idHex, dataHex string
		if err := inner.Field("problem_id", &idHex); err != nil {
			return err
		}
		if err := inner.Field("data", &dataHex); err != nil {
			return err
		}
		id, err := chainhash.NewHashFromStr(idHex)
		if err != nil {
			return cerrors.OutOfRange("problem_id", err.Error())
		}
		raw, err := hex.DecodeString(dataHex)
		if err != nil {
			return cerrors.TypeMismatch("data")
		}
		p.Kind = KindCustom
		p.Custom = &CustomProblem{ProblemID: id, Data: raw}

	default:
		return cerrors.InvalidParameter("kind", "no recognised problem tag present")
	}
	return p.Validate()
}

type subsetSumSolutionJSON struct {
	Indices []uint32 `json:"indices"`
}

type satSolutionJSON struct {
	Assignment []bool `json:"assignment"`
}

type tspSolutionJSON struct {
	Tour []uint32 `json:"tour"`
}

type customSolutionJSON struct {
	Data string `json:"data"`
}

// MarshalJSON renders s as a single-key tagged object.
func (s *Solution) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case KindSubsetSum:
		return json.Marshal(map[string]subsetSumSolutionJSON{"subset_sum": {Indices: s.SubsetSumIndices}})
	case KindSAT:
		return json.Marshal(map[string]satSolutionJSON{"sat": {Assignment: s.SATAssignment}})
	case KindTSP:
		return json.Marshal(map[string]tspSolutionJSON{"tsp": {Tour: s.TSPTour}})
	case KindCustom:
		return json.Marshal(map[string]customSolutionJSON{"custom": {Data: hex.EncodeToString(s.CustomData)}})
	default:
		return nil, cerrors.InvalidParameter("kind", "unknown solution kind")
	}
}

// UnmarshalJSON parses s from its tagged-object form.
func (s *Solution) UnmarshalJSON(data []byte) error {
	obj, err := codec.DecodeObject(data, []string{"subset_sum", "sat", "tsp", "custom"}, nil)
	if err != nil {
		return err
	}
	switch {
	case obj["subset_sum"] != nil:
		inner, err := codec.DecodeObject(obj["subset_sum"], []string{"indices"}, []string{"indices"})
		if err != nil {
			return err
		}
		var v subsetSumSolutionJSON
		if err := inner.Field("indices", &v.Indices); err != nil {
			return err
		}
		s.Kind = KindSubsetSum
		s.SubsetSumIndices = v.Indices

	case obj["sat"] != nil:
		inner, err := codec.DecodeObject(obj["sat"], []string{"assignment"}, []string{"assignment"})
		if err != nil {
			return err
		}
		var v satSolutionJSON
		if err := inner.Field("assignment", &v.Assignment); err != nil {
			return err
		}
		s.Kind = KindSAT
		s.SATAssignment = v.Assignment

	case obj["tsp"] != nil:
		inner, err := codec.DecodeObject(obj["tsp"], []string{"tour"}, []string{"tour"})
		if err != nil {
			return err
		}
		var v tspSolutionJSON
		if err := inner.Field("tour", &v.Tour); err != nil {
			return err
		}
		s.Kind = KindTSP
		s.TSPTour = v.Tour

	case obj["custom"] != nil:
		inner, err := codec.DecodeObject(obj["custom"], []string{"data"}, []string{"data"})
		if err != nil {
			return err
		}
		var dataHex string
		if err := inner.Field("data", &dataHex); err != nil {
			return err
		}
		raw, err := hex.DecodeString(dataHex)
		if err != nil {
			return cerrors.TypeMismatch("data")
		}
		s.Kind = KindCustom
		s.CustomData = raw

	default:
		return cerrors.InvalidParameter("kind", "no recognised solution tag present")
	}
	return nil
}
