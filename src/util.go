// SPDX-License-Identifier: MIT
package main

import (
	"log"
)

func logCheck(message string, err error) {
	if err != nil {
		log.Fatal(":: ", message, " :: ", err)
	}
}
