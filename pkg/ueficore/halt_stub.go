// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build !(tamago && amd64)

package ueficore

import (
	"time"
)

func halt() {
	time.Sleep(time.Hour)
}
