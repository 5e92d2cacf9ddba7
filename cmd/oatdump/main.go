// Command oatdump inspects Android OAT files, carves the DEX images they
// embed, and compares DEX databases.
package main

func main() {
	execute()
}
