package sort_test

import (
	"fmt"

	"github.com/exascience/sortbench/cancel"
	"github.com/exascience/sortbench/instrument"
	"github.com/exascience/sortbench/record"
	"github.com/exascience/sortbench/sort"
)

func Example() {
	data := record.Dataset{
		{Key: 31, Status: record.Preserved},
		{Key: 42, Status: record.Burned},
		{Key: 17, Status: record.Deforested},
		{Key: 26, Status: record.Preserved},
	}

	var stats instrument.Statistics
	fmt.Println(data)
	sort.NewMergeSort().Sort(data, cancel.NewToken(), &stats)
	fmt.Println(data)
	fmt.Println(stats.Comparisons(), stats.Swaps())

	// Output:
	// [31:1 42:2 17:3 26:1]
	// [17:3 26:1 31:1 42:2]
	// 6 4
}
