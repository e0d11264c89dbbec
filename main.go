package main

import (
	"fmt"

	_ "github.com/agentuity/tiercache/cache"
	_ "github.com/agentuity/tiercache/config"
	_ "github.com/agentuity/tiercache/logger"
)

func main() {
	fmt.Println("Hi")
}
