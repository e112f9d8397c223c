// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package gas

import "maps"

// Cost is a (base, rate) pair in internal units.
type Cost struct {
	Base uint64
	Rate uint64
}

// DefaultPerPublishedByte is the storage cost of one published byte, in internal units.
const DefaultPerPublishedByte = 100

// DefaultNativeCost is applied to every native of the default schedule.
var DefaultNativeCost = Cost{Base: 1000, Rate: 1000}

// Schedule is an immutable cost table.
type Schedule struct {
	instructions     map[Opcode]Cost
	natives          map[string]Cost
	perPublishedByte uint64
}

// NewSchedule builds a schedule. The maps are copied.
func NewSchedule(instructions map[Opcode]Cost, natives map[string]Cost, perPublishedByte uint64) *Schedule {
	return &Schedule{
		instructions:     maps.Clone(instructions),
		natives:          maps.Clone(natives),
		perPublishedByte: perPublishedByte,
	}
}

// Instruction returns the cost of op.
func (s *Schedule) Instruction(op Opcode) (Cost, bool) {
	c, ok := s.instructions[op]
	return c, ok
}

// Native returns the cost of the native function named "module::function".
func (s *Schedule) Native(name string) (Cost, bool) {
	c, ok := s.natives[name]
	return c, ok
}

// PerPublishedByte returns the storage cost of one byte.
func (s *Schedule) PerPublishedByte() uint64 {
	return s.perPublishedByte
}

// WithNatives returns a copy of s with the given native costs added.
func (s *Schedule) WithNatives(natives map[string]Cost) *Schedule {
	merged := maps.Clone(s.natives)
	if merged == nil {
		merged = make(map[string]Cost, len(natives))
	}
	maps.Copy(merged, natives)
	return &Schedule{s.instructions, merged, s.perPublishedByte}
}

var defaultSchedule = NewSchedule(defaultInstructionCosts, nil, DefaultPerPublishedByte)

// DefaultSchedule returns the stock schedule. Natives are registered by the
// natives package through WithNatives.
func DefaultSchedule() *Schedule {
	return defaultSchedule
}

var defaultInstructionCosts = map[Opcode]Cost{
	MOVE_TO:                   {13, 1},
	MOVE_TO_GENERIC:           {27, 1},
	MOVE_FROM:                 {459, 1},
	MOVE_FROM_GENERIC:         {13, 1},
	BR_TRUE:                   {1, 1},
	WRITE_REF:                 {1, 1},
	MUL:                       {1, 1},
	MOVE_LOC:                  {1, 1},
	AND:                       {1, 1},
	POP:                       {1, 1},
	BIT_AND:                   {2, 1},
	READ_REF:                  {1, 1},
	SUB:                       {1, 1},
	MUT_BORROW_FIELD:          {1, 1},
	MUT_BORROW_FIELD_GENERIC:  {1, 1},
	IMM_BORROW_FIELD:          {1, 1},
	IMM_BORROW_FIELD_GENERIC:  {1, 1},
	ADD:                       {1, 1},
	COPY_LOC:                  {1, 1},
	ST_LOC:                    {1, 1},
	RET:                       {638, 1},
	LT:                        {1, 1},
	LD_U8:                     {1, 1},
	LD_U64:                    {1, 1},
	LD_U128:                   {1, 1},
	CAST_U8:                   {2, 1},
	CAST_U64:                  {1, 1},
	CAST_U128:                 {1, 1},
	ABORT:                     {1, 1},
	MUT_BORROW_LOC:            {2, 1},
	IMM_BORROW_LOC:            {1, 1},
	LD_CONST:                  {1, 1},
	GE:                        {1, 1},
	XOR:                       {1, 1},
	SHL:                       {2, 1},
	SHR:                       {1, 1},
	NEQ:                       {1, 1},
	NOT:                       {1, 1},
	CALL:                      {1132, 1},
	CALL_GENERIC:              {582, 1},
	LE:                        {2, 1},
	BRANCH:                    {1, 1},
	UNPACK:                    {2, 1},
	UNPACK_GENERIC:            {2, 1},
	OR:                        {2, 1},
	LD_FALSE:                  {1, 1},
	LD_TRUE:                   {1, 1},
	MOD:                       {1, 1},
	BR_FALSE:                  {1, 1},
	EXISTS:                    {41, 1},
	EXISTS_GENERIC:            {34, 1},
	BIT_OR:                    {2, 1},
	FREEZE_REF:                {1, 1},
	MUT_BORROW_GLOBAL:         {21, 1},
	MUT_BORROW_GLOBAL_GENERIC: {15, 1},
	IMM_BORROW_GLOBAL:         {23, 1},
	IMM_BORROW_GLOBAL_GENERIC: {14, 1},
	DIV:                       {3, 1},
	EQ:                        {1, 1},
	GT:                        {1, 1},
	PACK:                      {2, 1},
	PACK_GENERIC:              {2, 1},
	NOP:                       {1, 1},
	VEC_PACK:                  {84, 1},
	VEC_LEN:                   {98, 1},
	VEC_IMM_BORROW:            {1334, 1},
	VEC_MUT_BORROW:            {1902, 1},
	VEC_PUSH_BACK:             {53, 1},
	VEC_POP_BACK:              {227, 1},
	VEC_UNPACK:                {572, 1},
	VEC_SWAP:                  {1436, 1},
	LD_U16:                    {1, 1},
	LD_U32:                    {1, 1},
	LD_U256:                   {1, 1},
	CAST_U16:                  {2, 1},
	CAST_U32:                  {2, 1},
	CAST_U256:                 {2, 1},
}
