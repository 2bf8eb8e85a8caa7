// assayplot charts Luminex-style assay tables, including values censored at
// the instrument's detection limits, as bar charts or heatmaps.
package main

import (
	"log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalln(err)
	}
}
