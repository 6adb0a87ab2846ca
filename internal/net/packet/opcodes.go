package packet

// Client → server opcodes.
const (
	C_OPCODE_VERSION      byte = 1
	C_OPCODE_LOGIN        byte = 2
	C_OPCODE_ENTER_WORLD  byte = 3
	C_OPCODE_MOVE         byte = 10
	C_OPCODE_USE_ITEM     byte = 11
	C_OPCODE_PICKUP       byte = 12
	C_OPCODE_CRAFT_START  byte = 20
	C_OPCODE_CRAFT_CANCEL byte = 21
	C_OPCODE_CRAFT_CLEAR  byte = 22
	C_OPCODE_RESPAWN      byte = 30
	C_OPCODE_ALIVE        byte = 40
	C_OPCODE_QUIT         byte = 41
)

// Server → client opcodes.
const (
	S_OPCODE_VERSION_OK     byte = 101
	S_OPCODE_LOGIN_RESULT   byte = 102
	S_OPCODE_ENTER_WORLD    byte = 103
	S_OPCODE_SYSTEM_MESSAGE byte = 110
	S_OPCODE_STAT_SYNC      byte = 111
	S_OPCODE_HP_UPDATE      byte = 112
	S_OPCODE_ADD_ITEM       byte = 120
	S_OPCODE_REMOVE_ITEM    byte = 121
	S_OPCODE_GROUND_DROP    byte = 122
	S_OPCODE_QUEUE_SYNC     byte = 130
	S_OPCODE_DEATH          byte = 140
	S_OPCODE_RESPAWN        byte = 141
	S_OPCODE_DISCONNECT     byte = 150
)

// Login result codes sent in S_OPCODE_LOGIN_RESULT.
const (
	LoginOK            byte = 0
	LoginBadCredential byte = 1
	LoginAlreadyOn     byte = 2
	LoginError         byte = 3
)
