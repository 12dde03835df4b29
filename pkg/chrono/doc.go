// Package chrono implements the Chronospatial Computer, a 3-bit machine with
// three registers and eight instructions.
//
// A program is a flat stream of values read in (opcode, operand) pairs:
//
//	0 adv  A = A >> combo      4 bxc  B = B ^ C
//	1 bxl  B = B ^ literal     5 out  emit combo & 7
//	2 bst  B = combo & 7       6 bdv  B = A >> combo
//	3 jnz  if A != 0 jump      7 cdv  C = A >> combo
//
// Combo operands 0-3 are literals and 4, 5, 6 select A, B, C. Combo 7 is
// reserved and faults when read.
//
// Load parses puzzle text into a Machine. Machine.Step runs until the next
// output, so callers can stop early or consume output lazily via Outputs.
package chrono
