// Package domain contains the core entities and the pure transition function of
// the voting machine.
//
// This package is the innermost layer. It has no dependencies on storage,
// logging or any front end and contains only the business rules.
//
// # Entities
//
//   - [Voter]: opaque identity of a person casting a ballot
//   - [Candidate]: one of the names fixed when the tally is created
//   - [Ballot]: a voter plus an optional candidate choice
//   - [AttendanceSheet]: the set of voters who already cast a ballot
//   - [Scoreboard]: per-candidate counts plus blank and invalid counters
//   - [VotingState]: attendance and scoreboard, the unit storage loads and saves
//
// # Rules
//
// [Apply] checks attendance before anything else, so a voter can never cast a
// second ballot, whatever the second ballot contains. The sum of every counter
// on the scoreboard always equals the number of voters on the attendance sheet.
package domain
