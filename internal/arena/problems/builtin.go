package problems

// DefaultBank is a small built-in pool used when no problems file is configured.
func DefaultBank() *Bank {
	b, err := NewBank(builtin)
	if err != nil {
		// the builtin list is static; a failure here is a programming error
		panic(err)
	}
	return b
}

var builtin = []ProblemFull{
	{
		ID: "two-sum", Title: "Two Sum", Difficulty: DifficultyEasy, ProblemType: TypeCode,
		Prompt: "Given an array of integers and a target, return indices of the two numbers that add up to the target.",
		Hints:  []string{"A map from value to index helps.", "One pass is enough."},
		Tests:  []TestCase{{Input: "[2,7,11,15], 9", Expected: "[0,1]"}, {Input: "[3,2,4], 6", Expected: "[1,2]"}},
	},
	{
		ID: "fizz-buzz", Title: "Fizz Buzz", Difficulty: DifficultyEasy, ProblemType: TypeCode,
		Prompt: "Print numbers 1..n, replacing multiples of 3 with Fizz, of 5 with Buzz, of both with FizzBuzz.",
		Hints:  []string{"Check divisibility by 15 first."},
		Tests:  []TestCase{{Input: "5", Expected: "1,2,Fizz,4,Buzz"}},
	},
	{
		ID: "valid-parens", Title: "Valid Parentheses", Difficulty: DifficultyEasy, ProblemType: TypeCode,
		Prompt: "Determine whether a string of brackets is balanced.",
		Hints:  []string{"Use a stack.", "Pop on every closer and compare."},
		Tests:  []TestCase{{Input: "()[]{}", Expected: "true"}, {Input: "(]", Expected: "false"}},
	},
	{
		ID: "reverse-list", Title: "Reverse Linked List", Difficulty: DifficultyEasy, ProblemType: TypeCode,
		Prompt: "Reverse a singly linked list.",
		Hints:  []string{"Keep three pointers: prev, curr, next."},
		Tests:  []TestCase{{Input: "1->2->3", Expected: "3->2->1"}},
	},
	{
		ID: "group-anagrams", Title: "Group Anagrams", Difficulty: DifficultyMedium, ProblemType: TypeCode,
		Prompt: "Group strings that are anagrams of each other.",
		Hints:  []string{"Sorted characters make a canonical key."},
		Tests:  []TestCase{{Input: `["eat","tea","tan"]`, Expected: `[["eat","tea"],["tan"]]`}},
	},
	{
		ID: "coin-change", Title: "Coin Change", Difficulty: DifficultyMedium, ProblemType: TypeCode,
		Prompt: "Find the minimum number of coins needed to make an amount.",
		Hints:  []string{"Dynamic programming over amounts.", "Initialize with amount+1 as infinity."},
		Tests:  []TestCase{{Input: "[1,2,5], 11", Expected: "3"}},
	},
	{
		ID: "rotate-image", Title: "Rotate Image", Difficulty: DifficultyMedium, ProblemType: TypeCode,
		Prompt: "Rotate an n x n matrix 90 degrees clockwise in place.",
		Hints:  []string{"Transpose, then reverse each row."},
		Tests:  []TestCase{{Input: "[[1,2],[3,4]]", Expected: "[[3,1],[4,2]]"}},
	},
	{
		ID: "word-ladder", Title: "Word Ladder", Difficulty: DifficultyHard, ProblemType: TypeCode,
		Prompt: "Find the length of the shortest transformation sequence between two words.",
		Hints:  []string{"Breadth-first search over one-letter mutations."},
		Tests:  []TestCase{{Input: "hit -> cog", Expected: "5"}},
	},
	{
		ID: "median-streams", Title: "Find Median from Data Stream", Difficulty: DifficultyHard, ProblemType: TypeCode,
		Prompt: "Support adding numbers and finding the running median.",
		Hints:  []string{"Two heaps, balanced."},
		Tests:  []TestCase{{Input: "add 1, add 2, median", Expected: "1.5"}},
	},
	{
		ID: "garbage-loop", Title: "Infinite Loop Cleanup", Difficulty: DifficultyEasy, ProblemType: TypeGarbage,
		Prompt: "Delete the dead code until the loop terminates.",
		Tests:  []TestCase{{Input: "while(true){}", Expected: ""}},
	},
	{
		ID: "garbage-lint", Title: "Lint Noise", Difficulty: DifficultyEasy, ProblemType: TypeGarbage,
		Prompt: "Silence the linter without changing behavior.",
		Tests:  []TestCase{{Input: "unused var x", Expected: ""}},
	},
}
