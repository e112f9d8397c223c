// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package move

import "strconv"

// StatusCode is the major status of an engine operation.
//
// Codes are grouped in ranges: validation 0-999, verification 1000-1999,
// invariant violations 2000-2999, deserialization 3000-3999 and execution
// 4000-4999. The engine may return codes this package doesn't name.
type StatusCode uint64

const (
	StatusUnknownValidation            StatusCode = 0
	StatusInvalidSignature             StatusCode = 1
	StatusInsufficientBalance          StatusCode = 5
	StatusUnknownVerification          StatusCode = 1000
	StatusLinkerError                  StatusCode = 1001
	StatusInvalidMainFunctionSignature StatusCode = 1021
	StatusUnknownInvariantViolation    StatusCode = 2000
	StatusStorageError                 StatusCode = 2008
	StatusUnknownBinaryError           StatusCode = 3000
	StatusMalformedBundle              StatusCode = 3001
	StatusUnknownRuntime               StatusCode = 4000
	StatusExecuted                     StatusCode = 4001
	StatusOutOfGas                     StatusCode = 4002
	StatusResourceDoesNotExist         StatusCode = 4003
	StatusResourceAlreadyExists        StatusCode = 4004
	StatusDataFormatError              StatusCode = 4009
	StatusAborted                      StatusCode = 4016
)

var statusNames = map[StatusCode]string{
	StatusUnknownValidation:            "UNKNOWN_VALIDATION_STATUS",
	StatusInvalidSignature:             "INVALID_SIGNATURE",
	StatusInsufficientBalance:          "INSUFFICIENT_BALANCE",
	StatusUnknownVerification:          "UNKNOWN_VERIFICATION_ERROR",
	StatusLinkerError:                  "LINKER_ERROR",
	StatusInvalidMainFunctionSignature: "INVALID_MAIN_FUNCTION_SIGNATURE",
	StatusUnknownInvariantViolation:    "UNKNOWN_INVARIANT_VIOLATION_ERROR",
	StatusStorageError:                 "STORAGE_ERROR",
	StatusUnknownBinaryError:           "UNKNOWN_BINARY_ERROR",
	StatusMalformedBundle:              "MALFORMED_BUNDLE",
	StatusUnknownRuntime:               "UNKNOWN_RUNTIME_STATUS",
	StatusExecuted:                     "EXECUTED",
	StatusOutOfGas:                     "OUT_OF_GAS",
	StatusResourceDoesNotExist:         "RESOURCE_DOES_NOT_EXIST",
	StatusResourceAlreadyExists:        "RESOURCE_ALREADY_EXISTS",
	StatusDataFormatError:              "DATA_FORMAT_ERROR",
	StatusAborted:                      "ABORTED",
}

func (c StatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return "STATUS_" + strconv.FormatUint(uint64(c), 10)
}
