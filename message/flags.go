// Package message packs and parses the two message bodies that travel
// inside a frame: the operation message (put/get/delete/exists/operate)
// and the admin message (login and user/role administration).
package message

// Info1Flags gates read-family request behavior. Bit 0 is the first
// named flag; bit 2 is reserved and always zero.
type Info1Flags uint8

const (
	Info1Empty          Info1Flags = 0
	Info1Read           Info1Flags = 1 << 0
	Info1GetAll         Info1Flags = 1 << 1
	info1Reserved                  = 1 << 2
	Info1BatchIndex     Info1Flags = 1 << 3
	Info1Xdr            Info1Flags = 1 << 4
	Info1DontGetBinData Info1Flags = 1 << 5
	Info1ReadModeApAll  Info1Flags = 1 << 6
)

// Info2Flags gates write-family request behavior. Bit 6 is reserved.
type Info2Flags uint8

const (
	Info2Empty          Info2Flags = 0
	Info2Write          Info2Flags = 1 << 0
	Info2Delete         Info2Flags = 1 << 1
	Info2Generation     Info2Flags = 1 << 2
	Info2GenerationGt   Info2Flags = 1 << 3
	Info2DurableDelete  Info2Flags = 1 << 4
	Info2CreateOnly     Info2Flags = 1 << 5
	info2Reserved                  = 1 << 6
	Info2RespondAllOps  Info2Flags = 1 << 7
)

// Info3Flags gates control-plane request behavior. Bit 2 is reserved.
type Info3Flags uint8

const (
	Info3Empty          Info3Flags = 0
	Info3Last           Info3Flags = 1 << 0
	Info3CommitMaster   Info3Flags = 1 << 1
	info3Reserved                  = 1 << 2
	Info3UpdateOnly     Info3Flags = 1 << 3
	Info3CreateOrReplace Info3Flags = 1 << 4
	Info3ReplaceOnly    Info3Flags = 1 << 5
	Info3ScReadType     Info3Flags = 1 << 6
	Info3ScReadRelax    Info3Flags = 1 << 7
)
