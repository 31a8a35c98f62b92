// Package policy defines per-jurisdiction custodial-authority policy.
//
// The authority filter needs two predicates per jurisdiction: whether
// temporary-custody admissions are under state authority, and whether
// non-prison periods are. Modeling these as a lookup table keyed by
// jurisdiction code keeps jurisdiction differences out of the collapse and
// inference logic; adding a jurisdiction is a data change, not a code
// change.
//
// Policy packs are written in CUE and compiled with the CUE Go API. A pack
// is a single top-level "policy" struct:
//
//	policy: {
//		"US-MO": {
//			temporary_custody_under_state_authority:    true
//			non_prison_under_state_authority:           false
//			collapse_temporary_custody_with_revocation: true
//		}
//	}
package policy
