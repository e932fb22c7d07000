// Command cdt generates foliated 3D triangulations for Causal Dynamical
// Triangulations and exports their spacelike leaves.
package main

func main() {
	Execute()
}
