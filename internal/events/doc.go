// Package events derives discrete incarceration signals from a person's
// canonical period list: one admission event and one release event per
// state-prison period, plus a month-end stay event for every whole calendar
// month spent in custody.
//
// Derivation runs after normalization and collapsing; it assumes nothing
// about ordering but everything about data completeness (admission dates
// are present on every non-dropped period). County-jail periods yield no
// events of any kind.
//
// Events are value objects with no identity beyond their content. ID
// returns a content-addressed hash over the canonical JSON form, so two
// derivations of the same input produce byte-identical identifiers.
package events
