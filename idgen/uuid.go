/*
 * Copyright (C) 2020-2022 Arm Limited or its affiliates and Contributors. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 */

// Package idgen generates identifiers.
package idgen

import (
	"github.com/gofrs/uuid/v5"

	"github.com/RMF112018/Project-Controls-sub011/commonerrors"
)

// GenerateUUID4 generates a random UUID.
func GenerateUUID4() (string, error) {
	uuid, err := uuid.NewV4()
	if err != nil {
		return "", commonerrors.WrapError(commonerrors.ErrUnexpected, err, "failed generating uuid")
	}
	return uuid.String(), nil
}

// GenerateUUID7 generates a time-ordered UUID so that records sort by creation time.
func GenerateUUID7() (string, error) {
	uuid, err := uuid.NewV7()
	if err != nil {
		return "", commonerrors.WrapError(commonerrors.ErrUnexpected, err, "failed generating uuid")
	}
	return uuid.String(), nil
}

func IsValidUUID(u string) bool {
	_, err := uuid.FromString(u)
	return err == nil
}
