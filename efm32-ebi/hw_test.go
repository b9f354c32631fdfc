package ebi_test

import (
	"testing"

	ebi "github.com/tinygo-org/ebi/efm32-ebi"
)

func TestRegistersNameable(t *testing.T) {
	// Callers outside the package can hold on to the register block.
	var hw func(*ebi.EBI) *ebi.Registers = (*ebi.EBI).HW
	var bank *ebi.BankRegisters
	if hw == nil || bank != nil {
		t.Fatal("unexpected zero values")
	}
}
