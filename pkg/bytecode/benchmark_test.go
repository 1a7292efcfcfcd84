package bytecode

import "testing"

// benchProgram is a shape typical of real inputs: a few coordinate sums
// compared against thresholds with forward jumps.
func benchProgram() *Program {
	return programOf(
		op(OpPushX), op(OpPushY), op(OpAdd), push(-30), op(OpAdd),
		jmpos(3),
		op(OpPushZ), push(-15), op(OpAdd),
		jmpos(2),
		push(0), op(OpReturn),
		push(1),
	)
}

func BenchmarkVMEvaluate(b *testing.B) {
	vm := NewVM(benchProgram())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vm.Evaluate(int32(i%30), int32(i/30%30), int32(i/900%30))
	}
}

func BenchmarkVMEvaluateGrid(b *testing.B) {
	vm := NewVM(benchProgram())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for x := int32(0); x < 30; x++ {
			for y := int32(0); y < 30; y++ {
				for z := int32(0); z < 30; z++ {
					vm.Evaluate(x, y, z)
				}
			}
		}
	}
}

func BenchmarkProgramHash(b *testing.B) {
	p := benchProgram()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Hash()
	}
}
