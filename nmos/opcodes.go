// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmos

// An opsym is an internal symbol used to associate an opcode's data
// with its instructions.
type opsym byte

const (
	symADC opsym = iota
	symAND
	symASL
	symBCC
	symBCS
	symBEQ
	symBIT
	symBMI
	symBNE
	symBPL
	symBRK
	symBVC
	symBVS
	symCLC
	symCLD
	symCLI
	symCLV
	symCMP
	symCPX
	symCPY
	symDEC
	symDEX
	symDEY
	symEOR
	symINC
	symINX
	symINY
	symJMP
	symJSR
	symLDA
	symLDX
	symLDY
	symLSR
	symNOP
	symORA
	symPHA
	symPHP
	symPLA
	symPLP
	symROL
	symROR
	symRTI
	symRTS
	symSBC
	symSEC
	symSED
	symSEI
	symSTA
	symSTX
	symSTY
	symTAX
	symTAY
	symTSX
	symTXA
	symTXS
	symTYA

	// undocumented
	symALR
	symANC
	symANE
	symARR
	symDCP
	symISC
	symJAM
	symLAS
	symLAX
	symLXA
	symRLA
	symRRA
	symSAX
	symSBX
	symSHA
	symSHX
	symSHY
	symSLO
	symSRE
	symTAS
	symUSBC
)

// Data associated with each opcode. Cycles is the cost without page
// crossings and, for branches, without the branch being taken.
type opcodeData struct {
	sym      opsym
	mode     Mode
	opcode   byte
	cycles   byte
	bpcycles byte
}

var data = []opcodeData{
	{symBRK, IMP, 0x00, 7, 0},
	{symORA, IDX, 0x01, 6, 0},
	{symJAM, IMP, 0x02, 0, 0},
	{symSLO, IDX, 0x03, 8, 0},
	{symNOP, ZPG, 0x04, 3, 0},
	{symORA, ZPG, 0x05, 3, 0},
	{symASL, ZPG, 0x06, 5, 0},
	{symSLO, ZPG, 0x07, 5, 0},
	{symPHP, IMP, 0x08, 3, 0},
	{symORA, IMM, 0x09, 2, 0},
	{symASL, ACC, 0x0a, 2, 0},
	{symANC, IMM, 0x0b, 2, 0},
	{symNOP, ABS, 0x0c, 4, 0},
	{symORA, ABS, 0x0d, 4, 0},
	{symASL, ABS, 0x0e, 6, 0},
	{symSLO, ABS, 0x0f, 6, 0},

	{symBPL, REL, 0x10, 2, 1},
	{symORA, IDY, 0x11, 5, 1},
	{symJAM, IMP, 0x12, 0, 0},
	{symSLO, IDY, 0x13, 8, 0},
	{symNOP, ZPX, 0x14, 4, 0},
	{symORA, ZPX, 0x15, 4, 0},
	{symASL, ZPX, 0x16, 6, 0},
	{symSLO, ZPX, 0x17, 6, 0},
	{symCLC, IMP, 0x18, 2, 0},
	{symORA, ABY, 0x19, 4, 1},
	{symNOP, IMP, 0x1a, 2, 0},
	{symSLO, ABY, 0x1b, 7, 0},
	{symNOP, ABX, 0x1c, 4, 1},
	{symORA, ABX, 0x1d, 4, 1},
	{symASL, ABX, 0x1e, 7, 0},
	{symSLO, ABX, 0x1f, 7, 0},

	{symJSR, ABS, 0x20, 6, 0},
	{symAND, IDX, 0x21, 6, 0},
	{symJAM, IMP, 0x22, 0, 0},
	{symRLA, IDX, 0x23, 8, 0},
	{symBIT, ZPG, 0x24, 3, 0},
	{symAND, ZPG, 0x25, 3, 0},
	{symROL, ZPG, 0x26, 5, 0},
	{symRLA, ZPG, 0x27, 5, 0},
	{symPLP, IMP, 0x28, 4, 0},
	{symAND, IMM, 0x29, 2, 0},
	{symROL, ACC, 0x2a, 2, 0},
	{symANC, IMM, 0x2b, 2, 0},
	{symBIT, ABS, 0x2c, 4, 0},
	{symAND, ABS, 0x2d, 4, 0},
	{symROL, ABS, 0x2e, 6, 0},
	{symRLA, ABS, 0x2f, 6, 0},

	{symBMI, REL, 0x30, 2, 1},
	{symAND, IDY, 0x31, 5, 1},
	{symJAM, IMP, 0x32, 0, 0},
	{symRLA, IDY, 0x33, 8, 0},
	{symNOP, ZPX, 0x34, 4, 0},
	{symAND, ZPX, 0x35, 4, 0},
	{symROL, ZPX, 0x36, 6, 0},
	{symRLA, ZPX, 0x37, 6, 0},
	{symSEC, IMP, 0x38, 2, 0},
	{symAND, ABY, 0x39, 4, 1},
	{symNOP, IMP, 0x3a, 2, 0},
	{symRLA, ABY, 0x3b, 7, 0},
	{symNOP, ABX, 0x3c, 4, 1},
	{symAND, ABX, 0x3d, 4, 1},
	{symROL, ABX, 0x3e, 7, 0},
	{symRLA, ABX, 0x3f, 7, 0},

	{symRTI, IMP, 0x40, 6, 0},
	{symEOR, IDX, 0x41, 6, 0},
	{symJAM, IMP, 0x42, 0, 0},
	{symSRE, IDX, 0x43, 8, 0},
	{symNOP, ZPG, 0x44, 3, 0},
	{symEOR, ZPG, 0x45, 3, 0},
	{symLSR, ZPG, 0x46, 5, 0},
	{symSRE, ZPG, 0x47, 5, 0},
	{symPHA, IMP, 0x48, 3, 0},
	{symEOR, IMM, 0x49, 2, 0},
	{symLSR, ACC, 0x4a, 2, 0},
	{symALR, IMM, 0x4b, 2, 0},
	{symJMP, ABS, 0x4c, 3, 0},
	{symEOR, ABS, 0x4d, 4, 0},
	{symLSR, ABS, 0x4e, 6, 0},
	{symSRE, ABS, 0x4f, 6, 0},

	{symBVC, REL, 0x50, 2, 1},
	{symEOR, IDY, 0x51, 5, 1},
	{symJAM, IMP, 0x52, 0, 0},
	{symSRE, IDY, 0x53, 8, 0},
	{symNOP, ZPX, 0x54, 4, 0},
	{symEOR, ZPX, 0x55, 4, 0},
	{symLSR, ZPX, 0x56, 6, 0},
	{symSRE, ZPX, 0x57, 6, 0},
	{symCLI, IMP, 0x58, 2, 0},
	{symEOR, ABY, 0x59, 4, 1},
	{symNOP, IMP, 0x5a, 2, 0},
	{symSRE, ABY, 0x5b, 7, 0},
	{symNOP, ABX, 0x5c, 4, 1},
	{symEOR, ABX, 0x5d, 4, 1},
	{symLSR, ABX, 0x5e, 7, 0},
	{symSRE, ABX, 0x5f, 7, 0},

	{symRTS, IMP, 0x60, 6, 0},
	{symADC, IDX, 0x61, 6, 0},
	{symJAM, IMP, 0x62, 0, 0},
	{symRRA, IDX, 0x63, 8, 0},
	{symNOP, ZPG, 0x64, 3, 0},
	{symADC, ZPG, 0x65, 3, 0},
	{symROR, ZPG, 0x66, 5, 0},
	{symRRA, ZPG, 0x67, 5, 0},
	{symPLA, IMP, 0x68, 4, 0},
	{symADC, IMM, 0x69, 2, 0},
	{symROR, ACC, 0x6a, 2, 0},
	{symARR, IMM, 0x6b, 2, 0},
	{symJMP, IND, 0x6c, 5, 0},
	{symADC, ABS, 0x6d, 4, 0},
	{symROR, ABS, 0x6e, 6, 0},
	{symRRA, ABS, 0x6f, 6, 0},

	{symBVS, REL, 0x70, 2, 1},
	{symADC, IDY, 0x71, 5, 1},
	{symJAM, IMP, 0x72, 0, 0},
	{symRRA, IDY, 0x73, 8, 0},
	{symNOP, ZPX, 0x74, 4, 0},
	{symADC, ZPX, 0x75, 4, 0},
	{symROR, ZPX, 0x76, 6, 0},
	{symRRA, ZPX, 0x77, 6, 0},
	{symSEI, IMP, 0x78, 2, 0},
	{symADC, ABY, 0x79, 4, 1},
	{symNOP, IMP, 0x7a, 2, 0},
	{symRRA, ABY, 0x7b, 7, 0},
	{symNOP, ABX, 0x7c, 4, 1},
	{symADC, ABX, 0x7d, 4, 1},
	{symROR, ABX, 0x7e, 7, 0},
	{symRRA, ABX, 0x7f, 7, 0},

	{symNOP, IMM, 0x80, 2, 0},
	{symSTA, IDX, 0x81, 6, 0},
	{symNOP, IMM, 0x82, 2, 0},
	{symSAX, IDX, 0x83, 6, 0},
	{symSTY, ZPG, 0x84, 3, 0},
	{symSTA, ZPG, 0x85, 3, 0},
	{symSTX, ZPG, 0x86, 3, 0},
	{symSAX, ZPG, 0x87, 3, 0},
	{symDEY, IMP, 0x88, 2, 0},
	{symNOP, IMM, 0x89, 2, 0},
	{symTXA, IMP, 0x8a, 2, 0},
	{symANE, IMM, 0x8b, 2, 0},
	{symSTY, ABS, 0x8c, 4, 0},
	{symSTA, ABS, 0x8d, 4, 0},
	{symSTX, ABS, 0x8e, 4, 0},
	{symSAX, ABS, 0x8f, 4, 0},

	{symBCC, REL, 0x90, 2, 1},
	{symSTA, IDY, 0x91, 6, 0},
	{symJAM, IMP, 0x92, 0, 0},
	{symSHA, IDY, 0x93, 6, 0},
	{symSTY, ZPX, 0x94, 4, 0},
	{symSTA, ZPX, 0x95, 4, 0},
	{symSTX, ZPY, 0x96, 4, 0},
	{symSAX, ZPY, 0x97, 4, 0},
	{symTYA, IMP, 0x98, 2, 0},
	{symSTA, ABY, 0x99, 5, 0},
	{symTXS, IMP, 0x9a, 2, 0},
	{symTAS, ABY, 0x9b, 5, 0},
	{symSHY, ABX, 0x9c, 5, 0},
	{symSTA, ABX, 0x9d, 5, 0},
	{symSHX, ABY, 0x9e, 5, 0},
	{symSHA, ABY, 0x9f, 5, 0},

	{symLDY, IMM, 0xa0, 2, 0},
	{symLDA, IDX, 0xa1, 6, 0},
	{symLDX, IMM, 0xa2, 2, 0},
	{symLAX, IDX, 0xa3, 6, 0},
	{symLDY, ZPG, 0xa4, 3, 0},
	{symLDA, ZPG, 0xa5, 3, 0},
	{symLDX, ZPG, 0xa6, 3, 0},
	{symLAX, ZPG, 0xa7, 3, 0},
	{symTAY, IMP, 0xa8, 2, 0},
	{symLDA, IMM, 0xa9, 2, 0},
	{symTAX, IMP, 0xaa, 2, 0},
	{symLXA, IMM, 0xab, 2, 0},
	{symLDY, ABS, 0xac, 4, 0},
	{symLDA, ABS, 0xad, 4, 0},
	{symLDX, ABS, 0xae, 4, 0},
	{symLAX, ABS, 0xaf, 4, 0},

	{symBCS, REL, 0xb0, 2, 1},
	{symLDA, IDY, 0xb1, 5, 1},
	{symJAM, IMP, 0xb2, 0, 0},
	{symLAX, IDY, 0xb3, 5, 1},
	{symLDY, ZPX, 0xb4, 4, 0},
	{symLDA, ZPX, 0xb5, 4, 0},
	{symLDX, ZPY, 0xb6, 4, 0},
	{symLAX, ZPY, 0xb7, 4, 0},
	{symCLV, IMP, 0xb8, 2, 0},
	{symLDA, ABY, 0xb9, 4, 1},
	{symTSX, IMP, 0xba, 2, 0},
	{symLAS, ABY, 0xbb, 4, 1},
	{symLDY, ABX, 0xbc, 4, 1},
	{symLDA, ABX, 0xbd, 4, 1},
	{symLDX, ABY, 0xbe, 4, 1},
	{symLAX, ABY, 0xbf, 4, 1},

	{symCPY, IMM, 0xc0, 2, 0},
	{symCMP, IDX, 0xc1, 6, 0},
	{symNOP, IMM, 0xc2, 2, 0},
	{symDCP, IDX, 0xc3, 8, 0},
	{symCPY, ZPG, 0xc4, 3, 0},
	{symCMP, ZPG, 0xc5, 3, 0},
	{symDEC, ZPG, 0xc6, 5, 0},
	{symDCP, ZPG, 0xc7, 5, 0},
	{symINY, IMP, 0xc8, 2, 0},
	{symCMP, IMM, 0xc9, 2, 0},
	{symDEX, IMP, 0xca, 2, 0},
	{symSBX, IMM, 0xcb, 2, 0},
	{symCPY, ABS, 0xcc, 4, 0},
	{symCMP, ABS, 0xcd, 4, 0},
	{symDEC, ABS, 0xce, 6, 0},
	{symDCP, ABS, 0xcf, 6, 0},

	{symBNE, REL, 0xd0, 2, 1},
	{symCMP, IDY, 0xd1, 5, 1},
	{symJAM, IMP, 0xd2, 0, 0},
	{symDCP, IDY, 0xd3, 8, 0},
	{symNOP, ZPX, 0xd4, 4, 0},
	{symCMP, ZPX, 0xd5, 4, 0},
	{symDEC, ZPX, 0xd6, 6, 0},
	{symDCP, ZPX, 0xd7, 6, 0},
	{symCLD, IMP, 0xd8, 2, 0},
	{symCMP, ABY, 0xd9, 4, 1},
	{symNOP, IMP, 0xda, 2, 0},
	{symDCP, ABY, 0xdb, 7, 0},
	{symNOP, ABX, 0xdc, 4, 1},
	{symCMP, ABX, 0xdd, 4, 1},
	{symDEC, ABX, 0xde, 7, 0},
	{symDCP, ABX, 0xdf, 7, 0},

	{symCPX, IMM, 0xe0, 2, 0},
	{symSBC, IDX, 0xe1, 6, 0},
	{symNOP, IMM, 0xe2, 2, 0},
	{symISC, IDX, 0xe3, 8, 0},
	{symCPX, ZPG, 0xe4, 3, 0},
	{symSBC, ZPG, 0xe5, 3, 0},
	{symINC, ZPG, 0xe6, 5, 0},
	{symISC, ZPG, 0xe7, 5, 0},
	{symINX, IMP, 0xe8, 2, 0},
	{symSBC, IMM, 0xe9, 2, 0},
	{symNOP, IMP, 0xea, 2, 0},
	{symUSBC, IMM, 0xeb, 2, 0},
	{symCPX, ABS, 0xec, 4, 0},
	{symSBC, ABS, 0xed, 4, 0},
	{symINC, ABS, 0xee, 6, 0},
	{symISC, ABS, 0xef, 6, 0},

	{symBEQ, REL, 0xf0, 2, 1},
	{symSBC, IDY, 0xf1, 5, 1},
	{symJAM, IMP, 0xf2, 0, 0},
	{symISC, IDY, 0xf3, 8, 0},
	{symNOP, ZPX, 0xf4, 4, 0},
	{symSBC, ZPX, 0xf5, 4, 0},
	{symINC, ZPX, 0xf6, 6, 0},
	{symISC, ZPX, 0xf7, 6, 0},
	{symSED, IMP, 0xf8, 2, 0},
	{symSBC, ABY, 0xf9, 4, 1},
	{symNOP, IMP, 0xfa, 2, 0},
	{symISC, ABY, 0xfb, 7, 0},
	{symNOP, ABX, 0xfc, 4, 1},
	{symSBC, ABX, 0xfd, 4, 1},
	{symINC, ABX, 0xfe, 7, 0},
	{symISC, ABX, 0xff, 7, 0},
}
