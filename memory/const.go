package memory

const (
	MEMORY_SIZE      = 0x10_0000 // 1 MiB of real-mode memory.
	ADDRESS_MASK     = 0x0f_ffff // Physical addresses are 20 bits.
	ACCESS_LOG_LIMIT = 1000      // Default access log capacity.
)
