package tokensim_test

import (
	"fmt"

	"github.com/cognicore/tokensim/pkg/tokensim"
	"github.com/cognicore/tokensim/pkg/tokensim/config"
)

func ExampleToolkit_Compare() {
	cfg := config.Default()
	cfg.Measures = []string{"jaccard", "dice"}
	tk, err := tokensim.New(tokensim.Options{Config: cfg})
	if err != nil {
		panic(err)
	}

	r := tk.Compare("cat", "hat")
	fmt.Printf("a=%v b=%v c=%v d=%v\n", r.Cardinalities.A, r.Cardinalities.B, r.Cardinalities.C, r.Cardinalities.D)
	for _, s := range r.Scores {
		fmt.Printf("%s %.4f\n", s.Name, s.Value)
	}
	fmt.Println("sift4", r.Sift4)
	// Output:
	// a=2 b=2 c=2 d=778
	// jaccard 0.3333
	// dice 0.5000
	// sift4 1
}
