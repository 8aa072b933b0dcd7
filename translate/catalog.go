package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ptBR is the Brazilian Portuguese catalog, keyed by the en-US format.
var ptBR = map[string]string{
	// Assembler
	".equ syntax":                             "sintaxe de .equ",
	".equ duplicated":                         ".equ duplicado",
	"unknown instruction '%v'":                "instrução '%v' desconhecida",
	"label '%v' invalid":                      "label '%v' inválido",
	"label '%v' duplicated":                   "label '%v' duplicado",
	"label %v missing":                        "label %v não encontrado",
	"'%v' is not a register, number or label": "'%v' não é registrador, número ou label",
	"'%v' does not fit in 16 bits":            "'%v' não cabe em 16 bits",
	"$(%v) is not a valid expression":         "$(%v) não é uma expressão válida",
	"line %d %v":                              "linha %d %v",
	"line %d '%v' %v":                         "linha %d '%v' %v",

	// Runtime faults
	"division by zero":             "divisão por zero",
	"register %v invalid":          "registrador %v inválido",
	"operand %v is not a register": "operando %v não é um registrador",
	"label %v unresolved":          "label %v não resolvido",
	"internal fault: %v":           "falha interna: %v",
	"step limit reached":           "limite de passos atingido",
	"ERROR: %v":                    "ERRO: %v",
	"unknown instruction: %v":      "instrução desconhecida: %v",
	"CPU sends address":            "CPU envia endereço",
	"read byte (8 bits)":           "ler byte (8 bits)",
	"read word (16 bits)":          "ler palavra (16 bits)",
	"write byte (8 bits)":          "escrever byte (8 bits)",
	"write word (16 bits)":         "escrever palavra (16 bits)",
	"address: 0x%X | value: 0x%X":  "endereço: 0x%X | valor: 0x%X",

	// Instruction effects
	"CMP %v, %v → flags updated":          "CMP %v, %v → flags atualizadas",
	"%v %v → jumped to 0x%X":              "%v %v → saltou para 0x%X",
	"%v %v → not jumped (%v)":             "%v %v → não saltou (%v)",
	"CALL %v → IP = 0x%X, return to 0x%X": "CALL %v → IP = 0x%X, retorno em 0x%X",
	"LOOP %v → CX = %d, jumped":           "LOOP %v → CX = %d, saltou",
	"LOOP %v → CX = 0, loop end":          "LOOP %v → CX = 0, fim do loop",
	"NOP → no operation":                  "NOP → nenhuma operação",
	"HLT → CPU halted":                    "HLT → CPU parada",
	"PUSH %v → stack: 0x%X":               "PUSH %v → pilha: 0x%X",
}

// loadCatalog registers the built-in translations.
func loadCatalog() {
	for key, msg := range ptBR {
		err := message.SetString(language.BrazilianPortuguese, key, msg)
		if err != nil {
			panic(err)
		}
	}
}
