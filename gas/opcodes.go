// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gas

import "fmt"

// Opcode is an instruction kind of the engine's bytecode.
type Opcode byte

const (
	POP Opcode = iota + 0x01
	RET
	BR_TRUE
	BR_FALSE
	BRANCH
	LD_U64
	LD_CONST
	LD_TRUE
	LD_FALSE
	COPY_LOC
	MOVE_LOC
	ST_LOC
	MUT_BORROW_LOC
	IMM_BORROW_LOC
	MUT_BORROW_FIELD
	IMM_BORROW_FIELD
	CALL
	PACK
	UNPACK
	READ_REF
	WRITE_REF
	ADD
	SUB
	MUL
	MOD
	DIV
	BIT_OR
	BIT_AND
	XOR
	OR
	AND
	NOT
	EQ
	NEQ
	LT
	GT
	LE
	GE
	ABORT
	NOP
	EXISTS
	MUT_BORROW_GLOBAL
	IMM_BORROW_GLOBAL
	MOVE_FROM
	MOVE_TO
	FREEZE_REF
	SHL
	SHR
	LD_U8
	LD_U128
	CAST_U8
	CAST_U64
	CAST_U128
	MUT_BORROW_FIELD_GENERIC
	IMM_BORROW_FIELD_GENERIC
	CALL_GENERIC
	PACK_GENERIC
	UNPACK_GENERIC
	EXISTS_GENERIC
	MUT_BORROW_GLOBAL_GENERIC
	IMM_BORROW_GLOBAL_GENERIC
	MOVE_FROM_GENERIC
	MOVE_TO_GENERIC
	VEC_PACK
	VEC_LEN
	VEC_IMM_BORROW
	VEC_MUT_BORROW
	VEC_PUSH_BACK
	VEC_POP_BACK
	VEC_UNPACK
	VEC_SWAP
	LD_U16
	LD_U32
	LD_U256
	CAST_U16
	CAST_U32
	CAST_U256
)

var opCodeToString = map[Opcode]string{
	POP:                       "POP",
	RET:                       "RET",
	BR_TRUE:                   "BR_TRUE",
	BR_FALSE:                  "BR_FALSE",
	BRANCH:                    "BRANCH",
	LD_U64:                    "LD_U64",
	LD_CONST:                  "LD_CONST",
	LD_TRUE:                   "LD_TRUE",
	LD_FALSE:                  "LD_FALSE",
	COPY_LOC:                  "COPY_LOC",
	MOVE_LOC:                  "MOVE_LOC",
	ST_LOC:                    "ST_LOC",
	MUT_BORROW_LOC:            "MUT_BORROW_LOC",
	IMM_BORROW_LOC:            "IMM_BORROW_LOC",
	MUT_BORROW_FIELD:          "MUT_BORROW_FIELD",
	IMM_BORROW_FIELD:          "IMM_BORROW_FIELD",
	CALL:                      "CALL",
	PACK:                      "PACK",
	UNPACK:                    "UNPACK",
	READ_REF:                  "READ_REF",
	WRITE_REF:                 "WRITE_REF",
	ADD:                       "ADD",
	SUB:                       "SUB",
	MUL:                       "MUL",
	MOD:                       "MOD",
	DIV:                       "DIV",
	BIT_OR:                    "BIT_OR",
	BIT_AND:                   "BIT_AND",
	XOR:                       "XOR",
	OR:                        "OR",
	AND:                       "AND",
	NOT:                       "NOT",
	EQ:                        "EQ",
	NEQ:                       "NEQ",
	LT:                        "LT",
	GT:                        "GT",
	LE:                        "LE",
	GE:                        "GE",
	ABORT:                     "ABORT",
	NOP:                       "NOP",
	EXISTS:                    "EXISTS",
	MUT_BORROW_GLOBAL:         "MUT_BORROW_GLOBAL",
	IMM_BORROW_GLOBAL:         "IMM_BORROW_GLOBAL",
	MOVE_FROM:                 "MOVE_FROM",
	MOVE_TO:                   "MOVE_TO",
	FREEZE_REF:                "FREEZE_REF",
	SHL:                       "SHL",
	SHR:                       "SHR",
	LD_U8:                     "LD_U8",
	LD_U128:                   "LD_U128",
	CAST_U8:                   "CAST_U8",
	CAST_U64:                  "CAST_U64",
	CAST_U128:                 "CAST_U128",
	MUT_BORROW_FIELD_GENERIC:  "MUT_BORROW_FIELD_GENERIC",
	IMM_BORROW_FIELD_GENERIC:  "IMM_BORROW_FIELD_GENERIC",
	CALL_GENERIC:              "CALL_GENERIC",
	PACK_GENERIC:              "PACK_GENERIC",
	UNPACK_GENERIC:            "UNPACK_GENERIC",
	EXISTS_GENERIC:            "EXISTS_GENERIC",
	MUT_BORROW_GLOBAL_GENERIC: "MUT_BORROW_GLOBAL_GENERIC",
	IMM_BORROW_GLOBAL_GENERIC: "IMM_BORROW_GLOBAL_GENERIC",
	MOVE_FROM_GENERIC:         "MOVE_FROM_GENERIC",
	MOVE_TO_GENERIC:           "MOVE_TO_GENERIC",
	VEC_PACK:                  "VEC_PACK",
	VEC_LEN:                   "VEC_LEN",
	VEC_IMM_BORROW:            "VEC_IMM_BORROW",
	VEC_MUT_BORROW:            "VEC_MUT_BORROW",
	VEC_PUSH_BACK:             "VEC_PUSH_BACK",
	VEC_POP_BACK:              "VEC_POP_BACK",
	VEC_UNPACK:                "VEC_UNPACK",
	VEC_SWAP:                  "VEC_SWAP",
	LD_U16:                    "LD_U16",
	LD_U32:                    "LD_U32",
	LD_U256:                   "LD_U256",
	CAST_U16:                  "CAST_U16",
	CAST_U32:                  "CAST_U32",
	CAST_U256:                 "CAST_U256",
}

func (op Opcode) String() string {
	if str, ok := opCodeToString[op]; ok {
		return str
	}
	return fmt.Sprintf("opcode %#x not defined", byte(op))
}
