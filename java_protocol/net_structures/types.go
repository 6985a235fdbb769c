// Package net_structures provides the primitive wire types of the
// Minecraft Java Edition protocol and the PacketBuffer used to read and
// write them.
//
// All multi-byte integers are big-endian except VarInt/VarLong.
//
// https://minecraft.wiki/w/Java_Edition_protocol/Data_types
package net_structures

// ByteArray is a raw byte sequence used throughout the protocol.
type ByteArray = []byte
