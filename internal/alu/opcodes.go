package alu

// opcodes.go enumerates the closed set of opcodes cpu_exec understands. Opcodes are carried as
// their own name: a guest program writes the literal string "OP_ADD" into REG_OP, and cpu_exec
// switches on that string. This mirrors the source material's stringly-typed opcode register
// while still giving Go code a closed, named set of values to switch over exhaustively.
type Opcode string

const (
	OpAdd  Opcode = "OP_ADD"
	OpSub  Opcode = "OP_SUB"
	OpIncr Opcode = "OP_INCR"
	OpDecr Opcode = "OP_DECR"
	OpMul  Opcode = "OP_MUL"
	OpDiv  Opcode = "OP_DIV"
	OpMod  Opcode = "OP_MOD"

	OpIsNum      Opcode = "OP_IS_NUM"
	OpCmpEq      Opcode = "OP_CMP_EQ"
	OpCmpNeq     Opcode = "OP_CMP_NEQ"
	OpCmpLt      Opcode = "OP_CMP_LT"
	OpCmpLe      Opcode = "OP_CMP_LE"
	OpContains   Opcode = "OP_CONTAINS"
	OpStartsWith Opcode = "OP_STARTS_WITH"

	OpGetLength     Opcode = "OP_GET_LENGTH"
	OpGetColumn     Opcode = "OP_GET_COLUMN"
	OpReplaceColumn Opcode = "OP_REPLACE_COLUMN"
	OpConcatWith    Opcode = "OP_CONCAT_WITH"

	OpReadInput          Opcode = "OP_READ_INPUT"
	OpDisplay            Opcode = "OP_DISPLAY"
	OpDisplayLn          Opcode = "OP_DISPLAY_LN"
	OpSetBackgroundColor Opcode = "OP_SET_BACKGROUND_COLOR"
	OpRenderBitmap       Opcode = "OP_RENDER_BITMAP"

	OpReadBlock  Opcode = "OP_READ_BLOCK"
	OpWriteBlock Opcode = "OP_WRITE_BLOCK"

	OpEncryptData Opcode = "OP_ENCRYPT_DATA" // identity placeholder; not cryptography
	OpDecryptData Opcode = "OP_DECRYPT_DATA" // identity placeholder; not cryptography

	OpNop  Opcode = "OP_NOP"
	OpHalt Opcode = "OP_HALT"
)

// Keyboard input modes, held in operand A for OP_READ_INPUT.
const (
	KeyboardReadChar       = "KEYBOARD_READ_CHAR"
	KeyboardReadCharSilent = "KEYBOARD_READ_CHAR_SILENT"
	KeyboardReadLine       = "KEYBOARD_READ_LINE"
	KeyboardReadLineSilent = "KEYBOARD_READ_LINE_SILENT"
)
