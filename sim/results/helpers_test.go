package results

import "github.com/warehouse-sim/warehouse-sim/sim"

// sampleRows returns two hand-built rows with exactly representable values.
func sampleRows() []Row {
	return []Row{
		{Index: 0, Result: sim.Result{
			GroceryRate: 1.5, FrozenRate: 0.5, GroceryService: 0.25, FrozenService: 1,
			GroceryCapacity: 5, FrozenCapacity: 3, Workers: 2, Duration: 100,
			RejectsGrocery: 4, RejectsFrozen: 0, FinishedGrocery: 120, FinishedFrozen: 48,
			WorkerUtil: 0.375, AvgWaitGrocery: 0.125, AvgWaitFrozen: 0,
			FullRateGrocery: 0.0625, FullRateFrozen: 0, EmptyRateGrocery: 0.5, EmptyRateFrozen: 0.75,
		}},
		{Index: 1, Result: sim.Result{
			GroceryRate: 2, FrozenRate: 2, GroceryService: 0.5, FrozenService: 0.5,
			GroceryCapacity: 1, FrozenCapacity: 1, Workers: 0, Duration: 10.5,
			RejectsGrocery: 7, RejectsFrozen: 9,
			FullRateGrocery: 1, FullRateFrozen: 0.25,
		}},
	}
}

func sampleTable() *Table {
	t := NewTable(2)
	t.AppendAll(sampleRows())
	return t
}
