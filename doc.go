// Package dynarec implements the translation pipeline and runtime of a
// dynamic binary translator for the MIPS-I guest ISA (little-endian, as
// used by the PlayStation CPU). It decodes guest code into basic blocks,
// optimizes the resulting opcode list, lowers each opcode through a
// register cache onto a host-agnostic code builder, and executes the
// compiled blocks through a dispatcher that loops on a direct-mapped
// code lookup table keyed by guest PC.
//
// The guest GPU, host device callbacks for hardware registers, and any
// frontend that drives Execute from a main loop are treated as external
// collaborators and are outside this package's scope.
package dynarec
